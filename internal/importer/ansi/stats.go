package ansi

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/badele/ansispan/internal/types"
)

// Stats counts the tokens of a rendered stream.
type Stats struct {
	Size     int
	Total    int
	ByType   map[types.TokenType]int
	SGRCodes map[string]int
	C0Codes  map[byte]int
}

func CountTokens(input []byte) Stats {
	stats := Stats{
		Size:     len(input),
		ByType:   make(map[types.TokenType]int),
		SGRCodes: make(map[string]int),
		C0Codes:  make(map[byte]int),
	}

	for _, tok := range NewANSITokenizer(input).Tokenize() {
		stats.Total++
		stats.ByType[tok.Type]++

		switch tok.Type {
		case types.TokenSGR:
			stats.SGRCodes[strings.Join(tok.Parameters, ";")]++
		case types.TokenC0:
			stats.C0Codes[tok.C0Code]++
		}
	}

	return stats
}

// Escapes is the number of tokens that are not visible text.
func (s Stats) Escapes() int {
	return s.Total - s.ByType[types.TokenText]
}

func (s Stats) Write(w io.Writer) error {
	type typeCount struct {
		Type  types.TokenType
		Count int
	}

	var typeCounts []typeCount
	for t, count := range s.ByType {
		typeCounts = append(typeCounts, typeCount{t, count})
	}
	sort.Slice(typeCounts, func(i, j int) bool {
		if typeCounts[i].Count != typeCounts[j].Count {
			return typeCounts[i].Count > typeCounts[j].Count
		}
		return typeCounts[i].Type < typeCounts[j].Type
	})

	if _, err := fmt.Fprintf(w, "=== tokens: %d, escapes: %d ===\n", s.Total, s.Escapes()); err != nil {
		return err
	}
	for _, tc := range typeCounts {
		percentage := float64(tc.Count) / float64(s.Total) * 100
		if _, err := fmt.Fprintf(w, "  %-14s: %5d (%.1f%%)\n", tc.Type, tc.Count, percentage); err != nil {
			return err
		}
	}

	if len(s.SGRCodes) > 0 {
		keys := make([]string, 0, len(s.SGRCodes))
		for k := range s.SGRCodes {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if s.SGRCodes[keys[i]] != s.SGRCodes[keys[j]] {
				return s.SGRCodes[keys[i]] > s.SGRCodes[keys[j]]
			}
			return keys[i] < keys[j]
		})
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "  SGR %-10s: %5d\n", k, s.SGRCodes[k]); err != nil {
				return err
			}
		}
	}

	if len(s.C0Codes) > 0 {
		codes := make([]byte, 0, len(s.C0Codes))
		for c := range s.C0Codes {
			codes = append(codes, c)
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
		for _, c := range codes {
			name, ok := types.C0Names[c]
			if !ok {
				name = "Unknown"
			}
			if _, err := fmt.Fprintf(w, "  0x%02X %-9s: %5d\n", c, name, s.C0Codes[c]); err != nil {
				return err
			}
		}
	}

	return nil
}
