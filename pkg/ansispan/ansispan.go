// Package ansispan provides a public API for rendering styled text segments
// into terminal escape sequences with as few bytes as possible.
//
// This package provides functions to:
//   - Style text with SGR attributes and colors
//   - Turn segments into window titles or OSC 8 hyperlinks
//   - Hide escape bytes between wrap markers for line editors
//   - Render a sequence of segments emitting only the codes that change
//
// Example usage:
//
//	import "github.com/badele/ansispan/pkg/ansispan"
//
//	link := ansispan.Paint(ansispan.Blue.Normal().Underlined(), "docs")
//	link.Hyperlink("https://example.com")
//	out, _ := ansispan.ExportSequence([]ansispan.String{
//		ansispan.Paint(ansispan.Green.Normal(), "Read the "),
//		link,
//	})
package ansispan

import (
	"io"

	"github.com/badele/ansispan/internal/exporter"
	"github.com/badele/ansispan/internal/types"
)

// Type aliases for public API
type (
	// Style is a set of graphic rendition attributes; the zero value is plain.
	Style = types.Style

	// ColorValue represents a color (standard, indexed, or RGB)
	ColorValue = types.ColorValue

	// ColorType represents the type of color encoding
	ColorType = types.ColorType

	// Difference describes how to go from one style to the next
	Difference = types.Difference

	// DiffKind is the kind of a Difference
	DiffKind = types.DiffKind

	// WrapPolicy selects the markers around invisible bytes
	WrapPolicy = types.WrapPolicy

	// ControlKind tells whether a segment is plain text, a title or a link
	ControlKind = types.ControlKind

	// Payload is the text type of a segment: string or []byte
	Payload = types.Payload

	// String is a segment of UTF-8 text
	String = types.String

	// Bytes is a segment of raw bytes
	Bytes = types.Bytes

	// Sink is the output the serializers write to
	Sink = exporter.Sink
)

// Segment is one unit of styled text.
type Segment[T Payload] = types.Segment[T]

// Reset is the sequence restoring every attribute to its default.
const Reset = types.Reset

// Color type constants
const (
	ColorDefault  = types.ColorDefault
	ColorStandard = types.ColorStandard
	ColorIndexed  = types.ColorIndexed
	ColorRGB      = types.ColorRGB
)

// Difference kinds
const (
	DiffEmpty       = types.DiffEmpty
	DiffExtraStyles = types.DiffExtraStyles
	DiffReset       = types.DiffReset
)

// Annotation kinds
const (
	ControlNone  = types.ControlNone
	ControlTitle = types.ControlTitle
	ControlLink  = types.ControlLink
)

// Standard colors
var (
	Black   = types.Black
	Red     = types.Red
	Green   = types.Green
	Yellow  = types.Yellow
	Blue    = types.Blue
	Magenta = types.Magenta
	Cyan    = types.Cyan
	White   = types.White

	BrightBlack   = types.BrightBlack
	BrightRed     = types.BrightRed
	BrightGreen   = types.BrightGreen
	BrightYellow  = types.BrightYellow
	BrightBlue    = types.BrightBlue
	BrightMagenta = types.BrightMagenta
	BrightCyan    = types.BrightCyan
	BrightWhite   = types.BrightWhite
)

// Wrap policies
var (
	NoWrap   = types.NoWrap
	CtrlWrap = types.CtrlWrap
)

func Standard(index uint8) ColorValue { return types.Standard(index) }

func Indexed(index uint8) ColorValue { return types.Indexed(index) }

func RGB(r, g, b uint8) ColorValue { return types.RGB(r, g, b) }

// ColorByName resolves ANSI names, palette indexes, W3C names and #rrggbb.
func ColorByName(name string) (ColorValue, error) { return types.ColorByName(name) }

// CustomWrap delimits invisible bytes with caller supplied markers.
func CustomWrap(begin, end string) WrapPolicy { return types.CustomWrap(begin, end) }

// Between computes the minimal transition from first to next.
func Between(first, next Style) Difference { return types.Between(first, next) }

// NewSegment creates a plain segment.
func NewSegment[T Payload](text T) Segment[T] { return types.NewSegment(text) }

// Paint creates a segment displaying text with style.
func Paint[T Payload](style Style, text T) Segment[T] { return types.Paint(style, text) }

// Title creates a segment setting the terminal title. The title must not
// contain the OSC string terminator; it is written verbatim.
func Title[T Payload](text T) Segment[T] { return types.Title(text) }

// NewSink adapts any writer to a Sink.
func NewSink(w io.Writer) Sink { return exporter.NewSink(w) }

// WriteSegment writes one segment with its full prefix and suffix.
func WriteSegment[T Payload](w io.Writer, seg Segment[T]) error {
	return exporter.WriteSegment(exporter.NewSink(w), seg)
}

// WriteSequence writes segments with the minimal escape sequences between
// them. Write errors are returned unchanged.
func WriteSequence[T Payload](w io.Writer, segs []Segment[T]) error {
	return exporter.WriteSequence(exporter.NewSink(w), segs)
}

// ExportSegment renders one segment.
func ExportSegment[T Payload](seg Segment[T]) (T, error) { return exporter.ExportSegment(seg) }

// ExportSequence renders segments with minimal escape sequences.
func ExportSequence[T Payload](segs []Segment[T]) (T, error) { return exporter.ExportSequence(segs) }

// ExportPlainText returns only what a terminal displays.
func ExportPlainText[T Payload](segs []Segment[T]) T { return exporter.ExportPlainText(segs) }

// VisibleWidth counts the cells a width-aware consumer sees in rendered output.
func VisibleWidth(rendered string, wraps ...WrapPolicy) int {
	return exporter.VisibleWidth(rendered, wraps...)
}

// WrapPolicies lists the distinct wrap policies used by segs.
func WrapPolicies[T Payload](segs []Segment[T]) []WrapPolicy { return exporter.WrapPolicies(segs) }

// EncodeSequence converts text segments to byte segments in a legacy
// encoding ("cp437", "cp850", "iso-8859-1" or "utf8").
func EncodeSequence(segs []String, targetEncoding string) ([]Bytes, error) {
	return exporter.EncodeSequence(segs, targetEncoding)
}
