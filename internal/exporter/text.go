package exporter

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/badele/ansispan/internal/types"
)

// ExportPlainText returns what a terminal would display for segs, without
// any escape sequence: titles vanish, links keep their label.
func ExportPlainText[T types.Payload](segs []types.Segment[T]) T {
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Control() == types.ControlTitle {
			continue
		}
		sb.WriteString(string(seg.Text()))
	}
	return T(sb.String())
}

// StripWrapped removes every begin..end region from s, markers included, the
// way a line editor skips invisible prompt bytes. An unterminated region
// runs to the end of s.
func StripWrapped(s, begin, end string) string {
	if begin == "" || end == "" {
		return s
	}

	var sb strings.Builder
	for {
		i := strings.Index(s, begin)
		if i < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		s = s[i+len(begin):]

		j := strings.Index(s, end)
		if j < 0 {
			return sb.String()
		}
		s = s[j+len(end):]
	}
}

// VisibleWidth is the number of terminal cells a width-aware consumer
// counts for rendered output produced with the given policies.
func VisibleWidth(rendered string, wraps ...types.WrapPolicy) int {
	for _, wrap := range wraps {
		begin, end := wrap.Markers()
		rendered = StripWrapped(rendered, begin, end)
	}
	return runewidth.StringWidth(rendered)
}

// WrapPolicies returns the distinct enabled policies carried by segs, in
// order of first use.
func WrapPolicies[T types.Payload](segs []types.Segment[T]) []types.WrapPolicy {
	var wraps []types.WrapPolicy
	for _, seg := range segs {
		wrap := seg.Wrap()
		if wrap.Enabled() && !slices.Contains(wraps, wrap) {
			wraps = append(wraps, wrap)
		}
	}
	return wraps
}
