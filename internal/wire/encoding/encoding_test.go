package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCharset(t *testing.T) {
	tests := []struct {
		charset string
		name    string
	}{
		{"UTF8", "UTF8"},
		{"UNICODE_FSS", "UTF8"},
		{"NONE", "ASCII"},
		{"ASCII", "ASCII"},
		{"", "ASCII"},
		{"WIN1252", "WIN1252"},
		{"ISO8859_1", "ISO8859_1"},
		{"KOI8R", "KOI8R"},
	}
	for _, tt := range tests {
		t.Run(tt.charset, func(t *testing.T) {
			enc, err := ForCharset(tt.charset)
			require.NoError(t, err)
			assert.Equal(t, tt.name, enc.Name())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ForCharset("OCTETS")
		var unknown *ErrUnknownCharset
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "OCTETS", unknown.Charset)
	})
}

func TestUTF8Encoder(t *testing.T) {
	enc := UTF8()

	b, err := enc.Encode("employee.fdb")
	require.NoError(t, err)
	assert.Equal(t, []byte("employee.fdb"), b)

	b, err = enc.Encode("été")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc3, 0xa9, 't', 0xc3, 0xa9}, b)

	_, err = enc.Encode(string([]byte{0xff, 0xfe}))
	assert.Error(t, err)
}

func TestASCIIEncoder(t *testing.T) {
	enc := ASCII()

	b, err := enc.Encode("SYSDBA")
	require.NoError(t, err)
	assert.Equal(t, []byte("SYSDBA"), b)

	_, err = enc.Encode("ü")
	assert.Error(t, err)
}

func TestCharmapEncoder(t *testing.T) {
	t.Run("Win1252", func(t *testing.T) {
		enc, err := ForCharset("WIN1252")
		require.NoError(t, err)

		b, err := enc.Encode("Jürgen")
		require.NoError(t, err)
		assert.Equal(t, []byte{'J', 0xfc, 'r', 'g', 'e', 'n'}, b)
	})

	t.Run("Win1251Cyrillic", func(t *testing.T) {
		enc, err := ForCharset("WIN1251")
		require.NoError(t, err)

		b, err := enc.Encode("Д") // capital De
		require.NoError(t, err)
		assert.Equal(t, []byte{0xc4}, b)
	})

	t.Run("UnmappableRuneFails", func(t *testing.T) {
		enc, err := ForCharset("ISO8859_1")
		require.NoError(t, err)

		_, err = enc.Encode("世") // CJK, no Latin-1 mapping
		assert.Error(t, err)
	})
}
