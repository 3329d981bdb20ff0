package types

import (
	"encoding/json"
	"fmt"
)

/////////////////////////////////////////////////////////////////////////////
// TOKEN TYPE
/////////////////////////////////////////////////////////////////////////////

type TokenType int

const (
	TokenText TokenType = iota
	TokenC0
	TokenCSI
	TokenSGR
	TokenOSC
	TokenEscape
	TokenUnknown
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "TokenText"
	case TokenC0:
		return "TokenC0"
	case TokenCSI:
		return "TokenCSI"
	case TokenSGR:
		return "TokenSGR"
	case TokenOSC:
		return "TokenOSC"
	case TokenEscape:
		return "TokenEscape"
	case TokenUnknown:
		return "TokenUnknown"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN
/////////////////////////////////////////////////////////////////////////////

type Token struct {
	Type       TokenType `json:"type"`
	Pos        int       `json:"pos"`
	Raw        string    `json:"raw"`
	Value      string    `json:"value,omitempty"`
	Parameters []string  `json:"parameters,omitempty"`
	C0Code     byte      `json:"c0_code,omitempty"`
	Final      byte      `json:"final,omitempty"`
}

// C0 control codes names
var C0Names = map[byte]string{
	0x00: "NUL",
	0x01: "SOH",
	0x02: "STX",
	0x07: "BEL",
	0x08: "BS",
	0x09: "HT",
	0x0A: "LF",
	0x0D: "CR",
	0x1B: "ESC",
}

func (t Token) String() string {
	switch t.Type {
	case TokenText:
		return "TEXT: " + t.Value
	case TokenC0:
		if name, ok := C0Names[t.C0Code]; ok {
			return "C0: " + name
		}
		return fmt.Sprintf("C0: 0x%02X", t.C0Code)
	case TokenCSI:
		return fmt.Sprintf("CSI: %v %c", t.Parameters, t.Final)
	case TokenSGR:
		return fmt.Sprintf("SGR: %v", t.Parameters)
	case TokenOSC:
		return "OSC: " + t.Value
	case TokenEscape:
		return fmt.Sprintf("ESC: %q", t.Raw)
	default:
		return "UNKNOWN"
	}
}
