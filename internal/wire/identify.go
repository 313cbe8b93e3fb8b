package wire

import (
	"bytes"
	"os"
	"os/user"
	"strings"

	"github.com/rcastelli/fbwire/internal/wire/auth"
	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// Identification blob item values are length-prefixed with a single byte,
// so plugin payloads longer than that are split into numbered chunks.
const (
	maxIdentValue      = 255
	specificDataChunk  = maxIdentValue - 1
	maxSpecificDataLen = specificDataChunk * 256
)

// identification builds the CNCT tag blob sent inside op_connect: who is
// connecting, which auth plugins the client offers, the selected plugin's
// opening payload, and the transport encryption policy.
func identification(r resolved, client auth.Client) ([]byte, error) {
	var b identBuilder

	b.add(proto.CnctLogin, []byte(strings.ToUpper(r.User)))
	b.add(proto.CnctPluginName, []byte(client.PluginName()))
	b.add(proto.CnctPluginList, []byte(strings.Join(r.AuthPlugins, ",")))

	data, err := client.InitialData()
	if err != nil {
		return nil, err
	}
	if err := b.addSpecificData(data); err != nil {
		return nil, err
	}

	crypt := r.wireCrypt
	b.add(proto.CnctClientCrypt, []byte{
		byte(crypt), byte(crypt >> 8), byte(crypt >> 16), byte(crypt >> 24),
	})

	if u, err := user.Current(); err == nil {
		b.add(proto.CnctUser, []byte(u.Username))
	}
	if host, err := os.Hostname(); err == nil {
		b.add(proto.CnctHost, []byte(host))
	}
	b.add(proto.CnctUserVerification, nil)

	return b.bytes(), nil
}

type identBuilder struct {
	buf bytes.Buffer
}

func (b *identBuilder) add(tag byte, value []byte) {
	if len(value) > maxIdentValue {
		value = value[:maxIdentValue]
	}
	b.buf.WriteByte(tag)
	b.buf.WriteByte(byte(len(value)))
	b.buf.Write(value)
}

// addSpecificData splits a plugin payload into numbered chunks, each
// carrying its sequence byte ahead of the data.
func (b *identBuilder) addSpecificData(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) > maxSpecificDataLen {
		return &AuthDataTooLongError{Length: len(data)}
	}
	for seq := 0; len(data) > 0; seq++ {
		n := len(data)
		if n > specificDataChunk {
			n = specificDataChunk
		}
		chunk := make([]byte, 0, n+1)
		chunk = append(chunk, byte(seq))
		chunk = append(chunk, data[:n]...)
		b.add(proto.CnctSpecificData, chunk)
		data = data[n:]
	}
	return nil
}

func (b *identBuilder) bytes() []byte {
	return b.buf.Bytes()
}
