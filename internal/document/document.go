// Package document loads segment sequences described in YAML (or JSON).
//
//	wrap: ctrl
//	segments:
//	  - text: "Before link. "
//	    fg: green
//	  - text: "example.com"
//	    link: https://example.com
//	    fg: blue
//	    underline: true
//	  - title: "My Title"
package document

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/badele/ansispan/internal/types"
)

type Document struct {
	Wrap     string    `yaml:"wrap,omitempty"`
	Begin    string    `yaml:"begin,omitempty"`
	End      string    `yaml:"end,omitempty"`
	Segments []Segment `yaml:"segments"`
}

type Segment struct {
	Text  string `yaml:"text,omitempty"`
	Title string `yaml:"title,omitempty"`
	Link  string `yaml:"link,omitempty"`

	Fg  string `yaml:"fg,omitempty"`
	Bg  string `yaml:"bg,omitempty"`
	SGR string `yaml:"sgr,omitempty"`

	Bold          bool `yaml:"bold,omitempty"`
	Dim           bool `yaml:"dim,omitempty"`
	Italic        bool `yaml:"italic,omitempty"`
	Underline     bool `yaml:"underline,omitempty"`
	Blink         bool `yaml:"blink,omitempty"`
	Reverse       bool `yaml:"reverse,omitempty"`
	Hidden        bool `yaml:"hidden,omitempty"`
	Strikethrough bool `yaml:"strikethrough,omitempty"`

	// Wrap overrides the document policy for this segment.
	Wrap *string `yaml:"wrap,omitempty"`
}

func Load(r io.Reader) (*Document, error) {
	var doc Document

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}

	return &doc, nil
}

// Style resolves the style of a document segment. Raw SGR parameters are
// applied first, then colors and flags.
func (s Segment) Style() (types.Style, error) {
	var style types.Style

	if s.SGR != "" {
		params, err := types.ParseParams(s.SGR)
		if err != nil {
			return style, err
		}
		style = style.ApplyParams(params)
	}

	if s.Fg != "" {
		fg, err := types.ColorByName(s.Fg)
		if err != nil {
			return style, fmt.Errorf("foreground: %w", err)
		}
		style.Fg = fg
	}
	if s.Bg != "" {
		bg, err := types.ColorByName(s.Bg)
		if err != nil {
			return style, fmt.Errorf("background: %w", err)
		}
		style.Bg = bg
	}

	style.Bold = style.Bold || s.Bold
	style.Dim = style.Dim || s.Dim
	style.Italic = style.Italic || s.Italic
	style.Underline = style.Underline || s.Underline
	style.Blink = style.Blink || s.Blink
	style.Reverse = style.Reverse || s.Reverse
	style.Hidden = style.Hidden || s.Hidden
	style.Strikethrough = style.Strikethrough || s.Strikethrough

	return style, nil
}

// Build builds the sequence, applying fallback when the document does
// not name a wrap policy.
func (d *Document) Build(fallback types.WrapPolicy) ([]types.String, error) {
	wrap := fallback
	if d.Wrap != "" {
		w, err := types.ParseWrap(d.Wrap, d.Begin, d.End)
		if err != nil {
			return nil, err
		}
		wrap = w
	}

	segs := make([]types.String, 0, len(d.Segments))
	for i, s := range d.Segments {
		seg, err := s.build(wrap, d.Begin, d.End)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segs = append(segs, seg)
	}

	return segs, nil
}

func (s Segment) build(wrap types.WrapPolicy, begin, end string) (types.String, error) {
	if s.Wrap != nil {
		w, err := types.ParseWrap(*s.Wrap, begin, end)
		if err != nil {
			return types.String{}, err
		}
		wrap = w
	}

	if s.Title != "" {
		if s.Text != "" || s.Link != "" {
			return types.String{}, fmt.Errorf("title cannot be combined with text or link")
		}
		return types.Title(s.Title).WithWrap(wrap), nil
	}

	style, err := s.Style()
	if err != nil {
		return types.String{}, err
	}

	seg := types.Paint(style, s.Text)
	if s.Link != "" {
		seg.Hyperlink(s.Link)
	}
	seg.SetWrap(wrap)

	return seg, nil
}
