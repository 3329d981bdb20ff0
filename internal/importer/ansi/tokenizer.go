package ansi

// Sources :
// - https://invisible-island.net/xterm/ctlseqs/ctlseqs.html
// - https://gist.github.com/egmontkob/eb114294efbcd5adb1944c9f3cb5feda (OSC 8)

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/badele/ansispan/internal/types"
)

// Tokenizer splits a rendered stream back into text, C0 controls, CSI and
// OSC sequences. It understands what the exporter produces and little more.
type Tokenizer struct {
	input  []byte
	pos    int
	Tokens []types.Token `json:"tokens"`
}

func NewANSITokenizer(input []byte) *Tokenizer {
	return &Tokenizer{
		input:  input,
		pos:    0,
		Tokens: make([]types.Token, 0),
	}
}

func (t *Tokenizer) Tokenize() []types.Token {
	for t.pos < len(t.input) {
		t.nextToken()
	}
	return t.Tokens
}

func (t *Tokenizer) nextToken() {
	c := t.input[t.pos]

	// C0 (0x00-0x1F)
	// not printable characters
	if c < 0x20 {
		if c == 0x1B { // ESC
			t.parseEscape(t.pos)
		} else {
			t.parseC0(t.pos, c)
		}
		return
	}

	t.parseText(t.pos)
}

func (t *Tokenizer) parseC0(start int, code byte) {
	t.Tokens = append(t.Tokens, types.Token{
		Type:   types.TokenC0,
		Pos:    start,
		Raw:    string(code),
		C0Code: code,
	})
	t.pos++
}

func (t *Tokenizer) parseEscape(start int) {
	t.pos++

	if t.pos >= len(t.input) {
		t.appendEscape(start)
		return
	}

	switch t.input[t.pos] {
	case '[':
		t.pos++
		t.parseCSI(start)
	case ']':
		t.pos++
		t.parseOSC(start)
	default:
		t.pos++
		t.appendEscape(start)
	}
}

func (t *Tokenizer) appendEscape(start int) {
	t.Tokens = append(t.Tokens, types.Token{
		Type: types.TokenEscape,
		Pos:  start,
		Raw:  string(t.input[start:t.pos]),
	})
}

func (t *Tokenizer) parseCSI(start int) {
	params := t.collectParams()

	if t.pos >= len(t.input) {
		t.Tokens = append(t.Tokens, types.Token{
			Type: types.TokenUnknown,
			Pos:  start,
			Raw:  string(t.input[start:t.pos]),
		})
		return
	}

	final := t.input[t.pos]
	t.pos++

	token := types.Token{
		Type:       types.TokenCSI,
		Pos:        start,
		Raw:        string(t.input[start:t.pos]),
		Parameters: params,
		Final:      final,
	}
	if final == 'm' {
		token.Type = types.TokenSGR
	}

	t.Tokens = append(t.Tokens, token)
}

func (t *Tokenizer) parseOSC(start int) {
	data := make([]byte, 0)
	for t.pos < len(t.input) {
		if t.input[t.pos] == 0x07 { // BEL
			t.pos++
			break
		}
		if t.input[t.pos] == 0x1B && t.pos+1 < len(t.input) && t.input[t.pos+1] == '\\' {
			t.pos += 2
			break
		}
		data = append(data, t.input[t.pos])
		t.pos++
	}

	t.Tokens = append(t.Tokens, types.Token{
		Type:       types.TokenOSC,
		Pos:        start,
		Raw:        string(t.input[start:t.pos]),
		Value:      string(data),
		Parameters: strings.SplitN(string(data), ";", 2),
	})
}

func (t *Tokenizer) collectParams() []string {
	params := make([]string, 0)
	var current bytes.Buffer

	for t.pos < len(t.input) {
		b := t.input[t.pos]

		if (b >= '0' && b <= '9') || b == ';' || b == ':' {
			if b == ';' || b == ':' {
				params = append(params, current.String())
				current.Reset()
			} else {
				current.WriteByte(b)
			}
			t.pos++
		} else if b == '?' || b == '>' || b == '!' || b == ' ' {
			// Intermediate bytes, ignored
			t.pos++
		} else {
			break
		}
	}

	if current.Len() > 0 || len(params) > 0 {
		params = append(params, current.String())
	}

	return params
}

func (t *Tokenizer) parseText(start int) {
	for t.pos < len(t.input) {
		if t.input[t.pos] < 0x20 {
			break
		}

		_, size := utf8.DecodeRune(t.input[t.pos:])
		t.pos += size
	}

	text := string(t.input[start:t.pos])
	t.Tokens = append(t.Tokens, types.Token{
		Type:  types.TokenText,
		Pos:   start,
		Raw:   text,
		Value: text,
	})
}
