package wirecrypt

import (
	"crypto/cipher"
	"crypto/sha256"

	"golang.org/x/crypto/chacha20"
)

// chaCha is the modern transport cipher. The negotiated session key is
// hashed to the 256-bit cipher key; the counter starts at zero with a
// zero nonce, matching the server plugin of the same name.
type chaCha struct{}

func init() {
	Register(chaCha{})
}

func (chaCha) Name() string { return "ChaCha" }

func (chaCha) NewEncryptor(key []byte) (cipher.Stream, error) {
	return newChaChaStream(key)
}

func (chaCha) NewDecryptor(key []byte) (cipher.Stream, error) {
	return newChaChaStream(key)
}

func newChaChaStream(key []byte) (cipher.Stream, error) {
	sum := sha256.Sum256(key)
	nonce := make([]byte, chacha20.NonceSize)
	return chacha20.NewUnauthenticatedCipher(sum[:], nonce)
}
