package types

import (
	"fmt"
	"strings"
)

/////////////////////////////////////////////////////////////////////////////
// WRAPPING
/////////////////////////////////////////////////////////////////////////////

type WrapKind int

const (
	WrapNone WrapKind = iota
	// WrapCtrl delimits invisible bytes with SOH (0x01) and STX (0x02), the
	// markers readline uses for prompt escapes.
	WrapCtrl
	WrapCustom
)

// WrapPolicy selects the markers placed around escape bytes so that a
// width-aware consumer can skip them.
type WrapPolicy struct {
	Kind  WrapKind
	Begin string
	End   string
}

var (
	NoWrap   = WrapPolicy{}
	CtrlWrap = WrapPolicy{Kind: WrapCtrl}
)

func CustomWrap(begin, end string) WrapPolicy {
	return WrapPolicy{Kind: WrapCustom, Begin: begin, End: end}
}

// ParseWrap builds a policy from its command line name.
func ParseWrap(name, begin, end string) (WrapPolicy, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return NoWrap, nil
	case "ctrl", "ctrl-a-ctrl-b", "readline":
		return CtrlWrap, nil
	case "custom":
		return CustomWrap(begin, end), nil
	}
	return NoWrap, fmt.Errorf("unknown wrap policy: %s", name)
}

func (w WrapPolicy) Enabled() bool {
	return w.Kind != WrapNone
}

func (w WrapPolicy) Markers() (begin, end string) {
	switch w.Kind {
	case WrapCtrl:
		return "\x01", "\x02"
	case WrapCustom:
		return w.Begin, w.End
	}
	return "", ""
}

func (w WrapPolicy) String() string {
	switch w.Kind {
	case WrapNone:
		return "none"
	case WrapCtrl:
		return "ctrl"
	case WrapCustom:
		return fmt.Sprintf("custom(%q,%q)", w.Begin, w.End)
	}
	return "unknown"
}

/////////////////////////////////////////////////////////////////////////////
// OS CONTROL
/////////////////////////////////////////////////////////////////////////////

type ControlKind int

const (
	ControlNone ControlKind = iota
	// ControlTitle turns the text into the window title; nothing is visible.
	ControlTitle
	// ControlLink keeps the text visible and points it at a separate URL.
	ControlLink
)

func (k ControlKind) String() string {
	switch k {
	case ControlNone:
		return "none"
	case ControlTitle:
		return "title"
	case ControlLink:
		return "link"
	}
	return fmt.Sprintf("ControlKind(%d)", int(k))
}

/////////////////////////////////////////////////////////////////////////////
// SEGMENT
/////////////////////////////////////////////////////////////////////////////

// Payload is the text carried by a segment: UTF-8 text or raw bytes of an
// unknown encoding.
type Payload interface {
	~string | ~[]byte
}

// Segment is one unit of text with its style and optional OSC annotation.
// Only the wrap policy and the hyperlink target may change after
// construction.
type Segment[T Payload] struct {
	style   Style
	text    T
	control ControlKind
	url     T
	wrap    WrapPolicy
}

type (
	String = Segment[string]
	Bytes  = Segment[[]byte]
)

func NewSegment[T Payload](text T) Segment[T] {
	return Segment[T]{text: text}
}

func Paint[T Payload](style Style, text T) Segment[T] {
	return Segment[T]{style: style, text: text}
}

// Title returns a segment setting the terminal title to text.
func Title[T Payload](text T) Segment[T] {
	return Segment[T]{text: text, control: ControlTitle}
}

// Hyperlink makes the segment a link to url. The URL is written verbatim:
// it must not contain the string terminator.
func (s *Segment[T]) Hyperlink(url T) {
	s.control = ControlLink
	s.url = url
}

func (s *Segment[T]) SetWrap(wrap WrapPolicy) {
	s.wrap = wrap
}

func (s Segment[T]) WithWrap(wrap WrapPolicy) Segment[T] {
	s.wrap = wrap
	return s
}

func (s Segment[T]) Style() Style {
	return s.style
}

func (s Segment[T]) Text() T {
	return s.text
}

func (s Segment[T]) Control() ControlKind {
	return s.control
}

func (s Segment[T]) URL() (T, bool) {
	if s.control != ControlLink {
		var zero T
		return zero, false
	}
	return s.url, true
}

func (s Segment[T]) Wrap() WrapPolicy {
	return s.wrap
}

// Clone returns a segment sharing nothing mutable with s.
func (s Segment[T]) Clone() Segment[T] {
	s.text = clonePayload(s.text)
	s.url = clonePayload(s.url)
	return s
}

func (s Segment[T]) Equal(other Segment[T]) bool {
	return s.style == other.style &&
		s.control == other.control &&
		s.wrap == other.wrap &&
		string(s.text) == string(other.text) &&
		string(s.url) == string(other.url)
}

func (s Segment[T]) String() string {
	return fmt.Sprintf("%s %q [%s]", s.control, string(s.text), s.style)
}

func clonePayload[T Payload](p T) T {
	if b, ok := any(p).([]byte); ok && b == nil {
		return p
	}
	return T(string(p))
}
