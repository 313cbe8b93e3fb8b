// Package wirecrypt provides the transport encryption plugins negotiated
// during the connection handshake. A plugin turns the session key produced
// by the authentication exchange into a pair of stream ciphers, one per
// transfer direction, which the connection splices into its reader and
// writer after op_crypt is acknowledged.
package wirecrypt

import (
	"crypto/cipher"
	"fmt"
	"sort"
	"sync"
)

// KeyTypeSymmetric is the key type announced in op_crypt for every plugin
// shipped here. Both directions derive from the same session key.
const KeyTypeSymmetric = "Symmetric"

// Plugin builds directional stream ciphers from a negotiated session key.
// Encryptor and decryptor must be independent cipher states even when the
// algorithm is symmetric, since the two directions advance separately.
type Plugin interface {
	// Name is the identifier sent in op_crypt, for example "Arc4".
	Name() string

	// NewEncryptor returns the stream cipher for outgoing data.
	NewEncryptor(key []byte) (cipher.Stream, error)

	// NewDecryptor returns the stream cipher for incoming data.
	NewDecryptor(key []byte) (cipher.Stream, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Plugin)
)

// Register adds a plugin to the process-wide registry. It is meant to be
// called from init functions; registering the same name twice panics.
func Register(p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[p.Name()]; dup {
		panic(fmt.Sprintf("wirecrypt: plugin %q registered twice", p.Name()))
	}
	registry[p.Name()] = p
}

// Lookup returns the plugin registered under name, or false.
func Lookup(name string) (Plugin, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Names lists the registered plugin names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
