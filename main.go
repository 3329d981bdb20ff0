package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/badele/ansispan/internal/config"
	"github.com/badele/ansispan/internal/document"
	"github.com/badele/ansispan/internal/exporter"
	"github.com/badele/ansispan/internal/importer/ansi"
	"github.com/badele/ansispan/internal/processor"
	"github.com/badele/ansispan/internal/types"
)

type Globals struct {
	Wrap     string `enum:"none,ctrl,custom" default:"none" env:"ANSISPAN_WRAP" help:"Wrap escape bytes for line editors (none, ctrl, custom)."`
	Begin    string `default:"" help:"Begin marker for --wrap=custom."`
	End      string `default:"" help:"End marker for --wrap=custom."`
	Encoding string `short:"e" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" env:"ANSISPAN_ENCODING" help:"Output encoding (utf8, cp437, cp850, iso-8859-1)."`
	Newline  bool   `short:"n" negatable:"" default:"true" help:"Terminate output with a newline."`
	Debug    bool   `short:"d" env:"ANSISPAN_DEBUG" help:"Enable debug logging on stderr."`
}

func (g *Globals) wrapPolicy() (types.WrapPolicy, error) {
	return types.ParseWrap(g.Wrap, g.Begin, g.End)
}

type StyleFlags struct {
	Fg            string `help:"Foreground color (name, palette index or #rrggbb)."`
	Bg            string `help:"Background color (name, palette index or #rrggbb)."`
	SGR           string `name:"sgr" help:"Raw SGR parameters, e.g. \"1;38;5;208\"."`
	Bold          bool   `short:"b" help:"Bold."`
	Dim           bool   `help:"Dim."`
	Italic        bool   `short:"i" help:"Italic."`
	Underline     bool   `short:"u" help:"Underline."`
	Blink         bool   `help:"Blink."`
	Reverse       bool   `help:"Reverse video."`
	Hidden        bool   `help:"Hidden."`
	Strikethrough bool   `help:"Strikethrough."`
}

func (f StyleFlags) style() (types.Style, error) {
	return document.Segment{
		Fg:            f.Fg,
		Bg:            f.Bg,
		SGR:           f.SGR,
		Bold:          f.Bold,
		Dim:           f.Dim,
		Italic:        f.Italic,
		Underline:     f.Underline,
		Blink:         f.Blink,
		Reverse:       f.Reverse,
		Hidden:        f.Hidden,
		Strikethrough: f.Strikethrough,
	}.Style()
}

type PaintCmd struct {
	StyleFlags `embed:""`

	Link string   `short:"l" help:"Turn the text into a hyperlink to this URL."`
	Text []string `arg:"" help:"Text to paint."`
}

func (c *PaintCmd) Run(g *Globals, log *zap.Logger) error {
	wrap, err := g.wrapPolicy()
	if err != nil {
		return err
	}
	style, err := c.style()
	if err != nil {
		return err
	}

	seg := types.Paint(style, strings.Join(c.Text, " "))
	if c.Link != "" {
		seg.Hyperlink(c.Link)
	}
	seg.SetWrap(wrap)

	log.Debug("paint", zap.Stringer("segment", seg), zap.Stringer("wrap", wrap))
	return emit(g, log, []types.String{seg})
}

type TitleCmd struct {
	Text []string `arg:"" help:"Window title."`
}

func (c *TitleCmd) Run(g *Globals, log *zap.Logger) error {
	wrap, err := g.wrapPolicy()
	if err != nil {
		return err
	}

	seg := types.Title(strings.Join(c.Text, " ")).WithWrap(wrap)
	log.Debug("title", zap.String("title", seg.Text()))

	// a title shows nothing, a trailing newline would only add an empty line
	g.Newline = false
	return emit(g, log, []types.String{seg})
}

type RenderCmd struct {
	File string `arg:"" optional:"" type:"path" help:"Segment document (YAML or JSON). Reads stdin when omitted."`
}

func (c *RenderCmd) Run(g *Globals, log *zap.Logger) error {
	segs, err := loadSegments(g, c.File)
	if err != nil {
		return err
	}

	log.Debug("render", zap.String("file", c.File), zap.Int("segments", len(segs)))
	return emit(g, log, segs)
}

type InspectCmd struct {
	File  string `arg:"" optional:"" type:"path" help:"Segment document (YAML or JSON). Reads stdin when omitted."`
	Width int    `short:"w" default:"0" help:"Terminal width used for the replay (0 never wraps)."`
}

func (c *InspectCmd) Run(g *Globals, log *zap.Logger) error {
	segs, err := loadSegments(g, c.File)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	if err := c.inspect(out, log, segs); err != nil {
		return err
	}
	return out.Flush()
}

// inspect measures and replays segs with the wrap policies they carry,
// which a document may set apart from --wrap.
func (c *InspectCmd) inspect(out io.Writer, log *zap.Logger, segs []types.String) error {
	rendered, err := exporter.ExportSequence(segs)
	if err != nil {
		return err
	}

	wraps := exporter.WrapPolicies(segs)
	vt, err := processor.Replay([]byte(rendered), c.Width, wraps...)
	if err != nil {
		return fmt.Errorf("error replaying output: %w", err)
	}

	fmt.Fprintf(out, "=== bytes: %d, visible width: %d ===\n", len(rendered), exporter.VisibleWidth(rendered, wraps...))
	if title := vt.Title(); title != "" {
		fmt.Fprintf(out, "=== title: %s ===\n", title)
	}
	fmt.Fprintf(out, "=== escaped: %q ===\n", rendered)
	if err := ansi.CountTokens([]byte(rendered)).Write(out); err != nil {
		return err
	}
	for _, run := range vt.Runs() {
		if run.Link != "" {
			fmt.Fprintf(out, "%-30q %s -> %s\n", run.Text, run.Style, run.Link)
			continue
		}
		fmt.Fprintf(out, "%-30q %s\n", run.Text, run.Style)
	}

	log.Debug("inspect", zap.Int("runs", len(vt.Runs())), zap.Bool("plain_at_end", vt.CurrentStyle().IsPlain()))
	return nil
}

type CLI struct {
	Globals

	Paint   PaintCmd   `cmd:"" help:"Render one styled segment."`
	Title   TitleCmd   `cmd:"" help:"Set the terminal title."`
	Render  RenderCmd  `cmd:"" help:"Render a segment document with minimal escape sequences."`
	Inspect InspectCmd `cmd:"" help:"Render a segment document and replay it through a virtual terminal."`
}

func loadSegments(g *Globals, path string) ([]types.String, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := document.Load(r)
	if err != nil {
		return nil, err
	}

	wrap, err := g.wrapPolicy()
	if err != nil {
		return nil, err
	}
	return doc.Build(wrap)
}

// emit writes segs to stdout in the requested encoding.
func emit(g *Globals, log *zap.Logger, segs []types.String) (err error) {
	out := bufio.NewWriter(os.Stdout)
	defer func() {
		err = multierr.Append(err, out.Flush())
	}()

	if g.Encoding == "utf8" {
		err = exporter.WriteSequence(out, segs)
	} else {
		var raw []types.Bytes
		if raw, err = exporter.EncodeSequence(segs, g.Encoding); err != nil {
			return err
		}
		log.Debug("encoded", zap.String("encoding", g.Encoding), zap.Int("segments", len(raw)))
		err = exporter.WriteSequence(out, raw)
	}
	if err != nil {
		return err
	}

	if g.Newline {
		_, err = out.WriteString("\n")
	}
	return err
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("ansispan"),
		kong.Description("Render styled text, titles and hyperlinks as minimal terminal escape sequences."),
		kong.UsageOnError(),
	)

	log := config.NewLogger(os.Stderr, cli.Debug)
	defer func() { _ = log.Sync() }()

	if err := ctx.Run(&cli.Globals, log); err != nil {
		log.Error("command failed", zap.String("command", ctx.Command()), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
