package types

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestColorByName(t *testing.T) {
	tests := []struct {
		name     string
		expected ColorValue
	}{
		{"", ColorValue{}},
		{"default", ColorValue{}},
		{"red", Red},
		{"Blue", Blue},
		{"bright-red", BrightRed},
		{"brightwhite", BrightWhite},
		{"3", Yellow},
		{"208", Indexed(208)},
		{"#ff8000", RGB(0xff, 0x80, 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColorByName(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestColorByNameErrors(t *testing.T) {
	for _, name := range []string{"256", "-1", "not-a-color"} {
		if _, err := ColorByName(name); err == nil {
			t.Errorf("Expected an error for %q", name)
		}
	}
}

func TestFromTcell(t *testing.T) {
	if got := FromTcell(tcell.ColorDefault); !got.IsDefault() {
		t.Errorf("Expected default color, got %v", got)
	}
	if got := FromTcell(tcell.ColorMaroon); got != Red {
		t.Errorf("Expected standard red, got %v", got)
	}
	if got := FromTcell(tcell.NewRGBColor(1, 2, 3)); got != RGB(1, 2, 3) {
		t.Errorf("Expected rgb(1,2,3), got %v", got)
	}
	if got := FromTcell(tcell.PaletteColor(123)); got != Indexed(123) {
		t.Errorf("Expected idx:123, got %v", got)
	}
}
