package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var standardNames = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// ColorByName resolves a color written as one of the sixteen ANSI names
// ("red", "bright-red"), a palette index ("208") or anything tcell knows
// about (W3C names, "#rrggbb").
func ColorByName(name string) (ColorValue, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "default" {
		return ColorValue{}, nil
	}

	if index, ok := standardNames[key]; ok {
		return Standard(index), nil
	}
	for _, prefix := range []string{"bright-", "bright_", "bright"} {
		if base, ok := strings.CutPrefix(key, prefix); ok {
			if index, ok := standardNames[base]; ok {
				return Standard(index + 8), nil
			}
		}
	}

	if n, err := strconv.Atoi(key); err == nil {
		if n < 0 || n > 255 {
			return ColorValue{}, fmt.Errorf("palette index out of range: %d", n)
		}
		if n < 16 {
			return Standard(uint8(n)), nil
		}
		return Indexed(uint8(n)), nil
	}

	color := tcell.GetColor(key)
	if color == tcell.ColorDefault || !color.Valid() {
		return ColorValue{}, fmt.Errorf("unknown color: %s", name)
	}

	return FromTcell(color), nil
}

// FromTcell converts a tcell color to its SGR representation.
func FromTcell(color tcell.Color) ColorValue {
	if color == tcell.ColorDefault || color == tcell.ColorReset || !color.Valid() {
		return ColorValue{}
	}

	if color.IsRGB() {
		r, g, b := color.RGB()
		return RGB(uint8(r), uint8(g), uint8(b))
	}

	index := uint8(color - tcell.ColorValid)
	if index < 16 {
		return Standard(index)
	}
	return Indexed(index)
}
