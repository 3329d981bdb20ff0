package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Reset restores every graphic rendition attribute to its default.
const Reset = "\x1b[0m"

/////////////////////////////////////////////////////////////////////////////
// COLOR
/////////////////////////////////////////////////////////////////////////////

type ColorType int

const (
	ColorDefault  ColorType = iota
	ColorStandard           // 0-15 (codes 30-37, 90-97, etc.)
	ColorIndexed            // 0-255 (ESC[38;5;n)
	ColorRGB                // RGB (ESC[38;2;r;g;b)
)

type ColorValue struct {
	Type    ColorType
	R, G, B uint8
	Index   uint8
}

// Standard returns one of the 16 ANSI colors. Indexes above 15 are palette
// entries and come back as Indexed(index).
func Standard(index uint8) ColorValue {
	if index > 15 {
		return Indexed(index)
	}
	return ColorValue{Type: ColorStandard, Index: index}
}

func Indexed(index uint8) ColorValue {
	return ColorValue{Type: ColorIndexed, Index: index}
}

func RGB(r, g, b uint8) ColorValue {
	return ColorValue{Type: ColorRGB, R: r, G: g, B: b}
}

var (
	Black   = Standard(0)
	Red     = Standard(1)
	Green   = Standard(2)
	Yellow  = Standard(3)
	Blue    = Standard(4)
	Magenta = Standard(5)
	Cyan    = Standard(6)
	White   = Standard(7)

	BrightBlack   = Standard(8)
	BrightRed     = Standard(9)
	BrightGreen   = Standard(10)
	BrightYellow  = Standard(11)
	BrightBlue    = Standard(12)
	BrightMagenta = Standard(13)
	BrightCyan    = Standard(14)
	BrightWhite   = Standard(15)
)

func (c ColorValue) IsDefault() bool {
	return c.Type == ColorDefault
}

// Normal returns a style with c as foreground and nothing else.
func (c ColorValue) Normal() Style {
	return Style{Fg: c}
}

func (c ColorValue) String() string {
	switch c.Type {
	case ColorDefault:
		return "default"
	case ColorStandard:
		return fmt.Sprintf("std:%d", c.Index)
	case ColorIndexed:
		return fmt.Sprintf("idx:%d", c.Index)
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return "unknown"
}

func (c ColorValue) fgCodes() []int {
	switch c.Type {
	case ColorStandard:
		if c.Index < 8 {
			return []int{30 + int(c.Index)}
		}
		return []int{90 + int(c.Index) - 8}
	case ColorIndexed:
		return []int{38, 5, int(c.Index)}
	case ColorRGB:
		return []int{38, 2, int(c.R), int(c.G), int(c.B)}
	}
	return nil
}

func (c ColorValue) bgCodes() []int {
	switch c.Type {
	case ColorStandard:
		if c.Index < 8 {
			return []int{40 + int(c.Index)}
		}
		return []int{100 + int(c.Index) - 8}
	case ColorIndexed:
		return []int{48, 5, int(c.Index)}
	case ColorRGB:
		return []int{48, 2, int(c.R), int(c.G), int(c.B)}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////
// STYLE (Select Graphic Rendition)
/////////////////////////////////////////////////////////////////////////////

// Style is an immutable set of graphic rendition attributes. The zero value
// is the plain style: no attribute, default colors, empty prefix and suffix.
type Style struct {
	Fg            ColorValue
	Bg            ColorValue
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Hidden        bool
	Strikethrough bool
}

func (s Style) IsPlain() bool {
	return s == Style{}
}

// Prefix returns the SGR sequence enabling every attribute of s, or an
// empty string for the plain style.
func (s Style) Prefix() string {
	codes := s.codes()
	if len(codes) == 0 {
		return ""
	}

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = strconv.Itoa(code)
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

// Suffix returns the sequence undoing Prefix.
func (s Style) Suffix() string {
	if s.IsPlain() {
		return ""
	}
	return Reset
}

func (s Style) Foreground(c ColorValue) Style {
	s.Fg = c
	return s
}

func (s Style) Background(c ColorValue) Style {
	s.Bg = c
	return s
}

func (s Style) Bolded() Style {
	s.Bold = true
	return s
}

func (s Style) Dimmed() Style {
	s.Dim = true
	return s
}

func (s Style) Italicized() Style {
	s.Italic = true
	return s
}

func (s Style) Underlined() Style {
	s.Underline = true
	return s
}

// codes returns all active attribute codes, attributes first then colors.
func (s Style) codes() []int {
	var codes []int

	if s.Bold {
		codes = append(codes, 1)
	}
	if s.Dim {
		codes = append(codes, 2)
	}
	if s.Italic {
		codes = append(codes, 3)
	}
	if s.Underline {
		codes = append(codes, 4)
	}
	if s.Blink {
		codes = append(codes, 5)
	}
	if s.Reverse {
		codes = append(codes, 7)
	}
	if s.Hidden {
		codes = append(codes, 8)
	}
	if s.Strikethrough {
		codes = append(codes, 9)
	}

	codes = append(codes, s.Fg.fgCodes()...)
	codes = append(codes, s.Bg.bgCodes()...)

	return codes
}

// ApplyParams applies raw SGR parameters on top of s.
func (s Style) ApplyParams(params []int) Style {
	for i := 0; i < len(params); i++ {
		code := params[i]

		switch code {
		case 0:
			s = Style{}

		case 1:
			s.Bold = true
		case 21, 22:
			s.Bold = false
			s.Dim = false

		case 2:
			s.Dim = true
		case 3:
			s.Italic = true
		case 4:
			s.Underline = true
		case 5:
			s.Blink = true
		case 7:
			s.Reverse = true
		case 8:
			s.Hidden = true
		case 9:
			s.Strikethrough = true

		case 23:
			s.Italic = false
		case 24:
			s.Underline = false
		case 25:
			s.Blink = false
		case 27:
			s.Reverse = false
		case 28:
			s.Hidden = false
		case 29:
			s.Strikethrough = false

		case 30, 31, 32, 33, 34, 35, 36, 37:
			s.Fg = Standard(uint8(code - 30))

		case 38: // Foreground extended
			i += applyExtendedColor(&s.Fg, params, i+1)

		case 39:
			s.Fg = ColorValue{}

		case 40, 41, 42, 43, 44, 45, 46, 47:
			s.Bg = Standard(uint8(code - 40))

		case 48: // Background extended
			i += applyExtendedColor(&s.Bg, params, i+1)

		case 49:
			s.Bg = ColorValue{}

		case 90, 91, 92, 93, 94, 95, 96, 97:
			s.Fg = Standard(uint8(code - 90 + 8))

		case 100, 101, 102, 103, 104, 105, 106, 107:
			s.Bg = Standard(uint8(code - 100 + 8))
		}
	}

	return s
}

func applyExtendedColor(color *ColorValue, params []int, start int) int {
	if start >= len(params) {
		return 0
	}

	switch params[start] {
	case 5: // Indexed color (256 colors)
		// ESC[38;5;n
		if start+1 < len(params) {
			*color = Indexed(uint8(params[start+1]))
			return 2
		}

	case 2: // RGB color
		// ESC[38;2;r;g;b
		if start+3 < len(params) {
			*color = RGB(uint8(params[start+1]), uint8(params[start+2]), uint8(params[start+3]))
			return 4
		}
	}

	return 1
}

// ParseParams parses a parameter list such as "1;38;5;208". An empty
// parameter stands for 0.
func ParseParams(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	fields := strings.Split(strings.ReplaceAll(raw, ":", ";"), ";")
	params := make([]int, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			params = append(params, 0)
			continue
		}
		code, err := strconv.Atoi(field)
		if err != nil || code < 0 {
			return nil, fmt.Errorf("invalid SGR parameter %q", field)
		}
		params = append(params, code)
	}

	return params, nil
}

func (s Style) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("fg:%s", s.Fg.String()))
	parts = append(parts, fmt.Sprintf("bg:%s", s.Bg.String()))

	parts = append(parts, fmt.Sprintf("bold:%t", s.Bold))
	parts = append(parts, fmt.Sprintf("dim:%t", s.Dim))
	parts = append(parts, fmt.Sprintf("italic:%t", s.Italic))
	parts = append(parts, fmt.Sprintf("underline:%t", s.Underline))
	parts = append(parts, fmt.Sprintf("blink:%t", s.Blink))
	parts = append(parts, fmt.Sprintf("reverse:%t", s.Reverse))
	parts = append(parts, fmt.Sprintf("hidden:%t", s.Hidden))
	parts = append(parts, fmt.Sprintf("strikethrough:%t", s.Strikethrough))

	return strings.Join(parts, ", ")
}
