package types

/////////////////////////////////////////////////////////////////////////////
// DIFFERENTIAL SGR ENCODING
/////////////////////////////////////////////////////////////////////////////

type DiffKind int

const (
	// DiffEmpty means both styles are identical.
	DiffEmpty DiffKind = iota
	// DiffExtraStyles means the next style only adds attributes or replaces
	// colors; Extra holds exactly those additions.
	DiffExtraStyles
	// DiffReset means an attribute must be turned off, which is only done
	// with a full reset followed by the complete next style.
	DiffReset
)

func (k DiffKind) String() string {
	switch k {
	case DiffEmpty:
		return "Empty"
	case DiffExtraStyles:
		return "ExtraStyles"
	case DiffReset:
		return "Reset"
	}
	return "Unknown"
}

type Difference struct {
	Kind  DiffKind
	Extra Style
}

// Between computes how to go from first to next with the fewest codes.
func Between(first, next Style) Difference {
	if first == next {
		return Difference{Kind: DiffEmpty}
	}

	if next.hasAttributeTurnedOff(first) {
		return Difference{Kind: DiffReset}
	}

	var extra Style

	extra.Bold = next.Bold && !first.Bold
	extra.Dim = next.Dim && !first.Dim
	extra.Italic = next.Italic && !first.Italic
	extra.Underline = next.Underline && !first.Underline
	extra.Blink = next.Blink && !first.Blink
	extra.Reverse = next.Reverse && !first.Reverse
	extra.Hidden = next.Hidden && !first.Hidden
	extra.Strikethrough = next.Strikethrough && !first.Strikethrough

	if next.Fg != first.Fg {
		extra.Fg = next.Fg
	}
	if next.Bg != first.Bg {
		extra.Bg = next.Bg
	}

	return Difference{Kind: DiffExtraStyles, Extra: extra}
}

// hasAttributeTurnedOff checks if any attribute was turned OFF from previous to s.
func (s Style) hasAttributeTurnedOff(previous Style) bool {
	if previous.Bold && !s.Bold {
		return true
	}
	if previous.Dim && !s.Dim {
		return true
	}
	if previous.Italic && !s.Italic {
		return true
	}
	if previous.Underline && !s.Underline {
		return true
	}
	if previous.Blink && !s.Blink {
		return true
	}
	if previous.Reverse && !s.Reverse {
		return true
	}
	if previous.Hidden && !s.Hidden {
		return true
	}
	if previous.Strikethrough && !s.Strikethrough {
		return true
	}
	// FG color changed to default
	if !previous.Fg.IsDefault() && s.Fg.IsDefault() {
		return true
	}
	// BG color changed to default
	if !previous.Bg.IsDefault() && s.Bg.IsDefault() {
		return true
	}
	return false
}
