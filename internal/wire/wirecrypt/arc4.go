package wirecrypt

import (
	"crypto/cipher"
	"crypto/rc4"
)

// arc4 is the historical default transport cipher. It keys RC4 directly
// with the session key and is kept for compatibility with servers that
// offer nothing stronger.
type arc4 struct{}

func init() {
	Register(arc4{})
}

func (arc4) Name() string { return "Arc4" }

func (arc4) NewEncryptor(key []byte) (cipher.Stream, error) {
	return rc4.NewCipher(key)
}

func (arc4) NewDecryptor(key []byte) (cipher.Stream, error) {
	return rc4.NewCipher(key)
}
