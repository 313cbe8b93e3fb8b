// Package encoding supplies the connection-character-set text capability
// consumed by the wire codec: deterministic, side-effect-free conversion of
// Go strings to their byte representation under a named Firebird character
// set. The full character-set table lives with the SQL layer; this package
// covers the sets a connection itself can be established with.
package encoding

import (
	"fmt"
	"unicode/utf8"

	xtext "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoder converts a string to its byte encoding under a specific character
// set. It satisfies the codec's encoder contract.
type Encoder interface {
	// Encode returns the byte representation of s.
	Encode(s string) ([]byte, error)

	// Name returns the Firebird character set name, e.g. "UTF8".
	Name() string
}

// ErrUnknownCharset reports a character set this package has no table for.
type ErrUnknownCharset struct {
	Charset string
}

func (e *ErrUnknownCharset) Error() string {
	return fmt.Sprintf("encoding: unknown character set %q", e.Charset)
}

// utf8Encoder passes UTF-8 strings through unchanged.
type utf8Encoder struct{}

func (utf8Encoder) Name() string { return "UTF8" }

func (utf8Encoder) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("encoding: string is not valid UTF-8")
	}
	return []byte(s), nil
}

// asciiEncoder accepts only 7-bit content. It backs the NONE character set,
// where the server applies no transliteration and anything beyond ASCII is a
// correctness hazard.
type asciiEncoder struct{}

func (asciiEncoder) Name() string { return "ASCII" }

func (asciiEncoder) Encode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return nil, fmt.Errorf("encoding: %q is not 7-bit safe", s)
		}
	}
	return []byte(s), nil
}

// charmapEncoder adapts a golang.org/x/text single-byte character map.
type charmapEncoder struct {
	name string
	enc  *xtext.Encoder
}

func (e *charmapEncoder) Name() string { return e.name }

func (e *charmapEncoder) Encode(s string) ([]byte, error) {
	b, err := e.enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding: encode to %s: %w", e.name, err)
	}
	return b, nil
}

// charmaps maps connection character set names to their x/text tables.
var charmaps = map[string]*charmap.Charmap{
	"ISO8859_1": charmap.ISO8859_1,
	"ISO8859_2": charmap.ISO8859_2,
	"WIN1250":   charmap.Windows1250,
	"WIN1251":   charmap.Windows1251,
	"WIN1252":   charmap.Windows1252,
	"WIN1253":   charmap.Windows1253,
	"WIN1254":   charmap.Windows1254,
	"DOS437":    charmap.CodePage437,
	"DOS850":    charmap.CodePage850,
	"KOI8R":     charmap.KOI8R,
}

// ForCharset returns the encoder for the named character set, or an
// ErrUnknownCharset. "NONE" maps to the strict ASCII encoder.
func ForCharset(name string) (Encoder, error) {
	switch name {
	case "UTF8", "UNICODE_FSS":
		return utf8Encoder{}, nil
	case "NONE", "ASCII", "":
		return asciiEncoder{}, nil
	}
	if cm, ok := charmaps[name]; ok {
		return &charmapEncoder{name: name, enc: cm.NewEncoder()}, nil
	}
	return nil, &ErrUnknownCharset{Charset: name}
}

// UTF8 is the default connection encoder.
func UTF8() Encoder { return utf8Encoder{} }

// ASCII is the encoder for protocol-internal identifiers.
func ASCII() Encoder { return asciiEncoder{} }
