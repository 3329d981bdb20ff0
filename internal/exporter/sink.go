package exporter

import (
	"io"

	"github.com/badele/ansispan/internal/types"
)

// Sink is the minimal output the serializers need: text slices go through
// WriteString, raw bytes through Write.
type Sink interface {
	io.Writer
	io.StringWriter
}

type stringSink struct {
	io.Writer
}

func (s stringSink) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// NewSink adapts w to a Sink, using its own WriteString when it has one.
func NewSink(w io.Writer) Sink {
	if sink, ok := w.(Sink); ok {
		return sink
	}
	return stringSink{Writer: w}
}

func writeString(w Sink, s string) error {
	if s == "" {
		return nil
	}
	_, err := w.WriteString(s)
	return err
}

func writePayload[T types.Payload](w Sink, p T) error {
	if len(p) == 0 {
		return nil
	}

	var err error
	switch v := any(p).(type) {
	case []byte:
		_, err = w.Write(v)
	case string:
		_, err = w.WriteString(v)
	default:
		_, err = w.Write([]byte(p))
	}
	return err
}
