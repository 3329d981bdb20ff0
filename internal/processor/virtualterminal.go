package processor

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/badele/ansispan/internal/importer/ansi"
	"github.com/badele/ansispan/internal/types"
)

///////////////////////////////////////////////////////////////////////////////
// Virtual Terminal
///////////////////////////////////////////////////////////////////////////////

type Cell struct {
	Char  rune
	Style types.Style
	Link  string
}

// Run is a maximal stretch of cells sharing style and link.
type Run struct {
	Text  string
	Style types.Style
	Link  string
}

// VirtualTerminal replays a rendered stream the way a terminal emulator
// would: it tracks the active style, the hyperlink target and the window
// title. Wrap markers (SOH/STX) take no room.
type VirtualTerminal struct {
	lines        [][]Cell
	width        int
	cursorX      int
	cursorY      int
	currentStyle types.Style
	currentLink  string
	title        string
}

// NewVirtualTerminal creates a terminal wrapping lines at width columns; a
// width of 0 never wraps.
func NewVirtualTerminal(width int) *VirtualTerminal {
	return &VirtualTerminal{
		lines: [][]Cell{{}},
		width: width,
	}
}

// Replay tokenizes data and applies it to a fresh terminal. The markers of
// wraps take no room, like SOH and STX.
func Replay(data []byte, width int, wraps ...types.WrapPolicy) (*VirtualTerminal, error) {
	for _, wrap := range wraps {
		data = dropMarkers(data, wrap)
	}

	vt := NewVirtualTerminal(width)
	if err := vt.Consume(ansi.NewANSITokenizer(data)); err != nil {
		return nil, err
	}
	return vt, nil
}

// dropMarkers removes custom wrap markers from data. Ctrl markers are C0
// codes the terminal already skips.
func dropMarkers(data []byte, wrap types.WrapPolicy) []byte {
	if wrap.Kind != types.WrapCustom {
		return data
	}

	begin, end := wrap.Markers()
	// the longer marker first, so a marker containing the other stays whole
	if len(begin) < len(end) {
		begin, end = end, begin
	}
	for _, m := range []string{begin, end} {
		if m != "" {
			data = bytes.ReplaceAll(data, []byte(m), nil)
		}
	}
	return data
}

func (vt *VirtualTerminal) Consume(src types.Tokenizer) error {
	return vt.ApplyTokens(src.Tokenize())
}

func (vt *VirtualTerminal) Title() string {
	return vt.title
}

func (vt *VirtualTerminal) CurrentStyle() types.Style {
	return vt.currentStyle
}

func (vt *VirtualTerminal) CurrentLink() string {
	return vt.currentLink
}

func (vt *VirtualTerminal) Lines() [][]Cell {
	return vt.lines
}

// ApplyTokens applies ANSI tokens to the virtual terminal
func (vt *VirtualTerminal) ApplyTokens(tokens []types.Token) error {
	for _, token := range tokens {
		if err := vt.applyToken(token); err != nil {
			return fmt.Errorf("token at %d: %w", token.Pos, err)
		}
	}
	return nil
}

func (vt *VirtualTerminal) applyToken(token types.Token) error {
	switch token.Type {
	case types.TokenText:
		vt.writeText(token.Value)

	case types.TokenC0:
		vt.handleC0(token.C0Code)

	case types.TokenSGR:
		return vt.handleSGR(token.Parameters)

	case types.TokenOSC:
		vt.handleOSC(token.Parameters)

	case types.TokenEscape, types.TokenUnknown:
		return fmt.Errorf("unsupported sequence %q", token.Raw)
	}

	return nil
}

func (vt *VirtualTerminal) writeText(text string) {
	for _, r := range text {
		if vt.width > 0 && vt.cursorX >= vt.width {
			vt.newLine()
		}

		line := vt.lines[vt.cursorY]
		cell := Cell{Char: r, Style: vt.currentStyle, Link: vt.currentLink}
		if vt.cursorX < len(line) {
			line[vt.cursorX] = cell
		} else {
			for len(line) < vt.cursorX {
				line = append(line, Cell{Char: ' '})
			}
			line = append(line, cell)
		}
		vt.lines[vt.cursorY] = line
		vt.cursorX++
	}
}

func (vt *VirtualTerminal) newLine() {
	vt.cursorY++
	vt.cursorX = 0
	if vt.cursorY >= len(vt.lines) {
		vt.lines = append(vt.lines, []Cell{})
	}
}

func (vt *VirtualTerminal) handleC0(code byte) {
	switch code {
	case 0x09: // TAB
		vt.cursorX = ((vt.cursorX / 8) + 1) * 8

	case 0x0A: // LF (Line Feed)
		vt.newLine()

	case 0x0D: // CR (Carriage Return)
		vt.cursorX = 0

	case 0x08: // BS (Backspace)
		if vt.cursorX > 0 {
			vt.cursorX--
		}
	}
}

func (vt *VirtualTerminal) handleSGR(params []string) error {
	if len(params) == 0 {
		vt.currentStyle = types.Style{}
		return nil
	}

	intParams := make([]int, 0, len(params))
	for _, p := range params {
		if p == "" {
			intParams = append(intParams, 0)
			continue
		}
		val, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid SGR parameter %q: %w", p, err)
		}
		intParams = append(intParams, val)
	}

	vt.currentStyle = vt.currentStyle.ApplyParams(intParams)
	return nil
}

func (vt *VirtualTerminal) handleOSC(params []string) {
	if len(params) < 2 {
		return
	}

	switch params[0] {
	case "0", "2":
		vt.title = params[1]
	case "8":
		// 8;params;URI, an empty URI ends the link
		_, uri, _ := strings.Cut(params[1], ";")
		vt.currentLink = uri
	}
}

// ExportPlainText returns the visible characters, one line per row.
func (vt *VirtualTerminal) ExportPlainText() string {
	rows := make([]string, len(vt.lines))
	for i, line := range vt.lines {
		var sb strings.Builder
		for _, cell := range line {
			sb.WriteRune(cell.Char)
		}
		rows[i] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// Runs collapses the cells of every row into runs of identical style and
// link, in display order.
func (vt *VirtualTerminal) Runs() []Run {
	var runs []Run
	for _, line := range vt.lines {
		for _, cell := range line {
			if n := len(runs); n > 0 && runs[n-1].Style == cell.Style && runs[n-1].Link == cell.Link {
				runs[n-1].Text += string(cell.Char)
				continue
			}
			runs = append(runs, Run{Text: string(cell.Char), Style: cell.Style, Link: cell.Link})
		}
	}
	return runs
}
