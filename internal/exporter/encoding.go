package exporter

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/badele/ansispan/internal/types"
)

// Encodings lists the supported target encodings.
var Encodings = []string{"utf8", "cp437", "cp850", "iso-8859-1"}

func encoderFor(name string) (*encoding.Encoder, error) {
	switch name {
	case "", "utf8":
		return nil, nil
	case "cp437":
		return charmap.CodePage437.NewEncoder(), nil
	case "cp850":
		return charmap.CodePage850.NewEncoder(), nil
	case "iso-8859-1":
		return charmap.ISO8859_1.NewEncoder(), nil
	}
	return nil, fmt.Errorf("unsupported encoding: %s", name)
}

// ConvertToEncoding converts UTF-8 data to the target encoding.
func ConvertToEncoding(data []byte, targetEncoding string) ([]byte, error) {
	encoder, err := encoderFor(targetEncoding)
	if err != nil {
		return nil, err
	}
	if encoder == nil {
		return bytes.Clone(data), nil
	}

	reader := transform.NewReader(bytes.NewReader(data), encoder)
	encodedData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("encoding conversion error: %w", err)
	}

	return encodedData, nil
}

// EncodeSequence turns text segments into byte segments in the target
// encoding. Styles, annotations and wrap policies are kept; wrap markers are
// ASCII and need no conversion.
func EncodeSequence(segs []types.String, targetEncoding string) ([]types.Bytes, error) {
	if _, err := encoderFor(targetEncoding); err != nil {
		return nil, err
	}

	out := make([]types.Bytes, 0, len(segs))
	for i, seg := range segs {
		text, err := ConvertToEncoding([]byte(seg.Text()), targetEncoding)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}

		var encoded types.Bytes
		switch seg.Control() {
		case types.ControlTitle:
			encoded = types.Title(text)
		default:
			encoded = types.Paint(seg.Style(), text)
		}

		if url, ok := seg.URL(); ok {
			rawURL, err := ConvertToEncoding([]byte(url), targetEncoding)
			if err != nil {
				return nil, fmt.Errorf("segment %d url: %w", i, err)
			}
			encoded.Hyperlink(rawURL)
		}
		encoded.SetWrap(seg.Wrap())

		out = append(out, encoded)
	}

	return out, nil
}
