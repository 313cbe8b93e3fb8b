// Package auth implements the client side of the authentication plugins
// exchanged during the connection handshake. A plugin contributes initial
// data to the connect identification blob, answers op_cont_auth rounds, and
// on success may yield a session key for transport encryption.
package auth

import (
	"fmt"
	"sync"
)

// Client is one plugin's per-connection authentication state. Instances are
// single-use: one connection attempt each, driven by the handshake.
type Client interface {
	// PluginName is the identifier advertised in the connect request,
	// for example "Srp" or "Legacy_Auth".
	PluginName() string

	// InitialData is the payload carried as plugin-specific data in the
	// connect identification blob. May be empty.
	InitialData() ([]byte, error)

	// Respond consumes server challenge data from an accept or cont_auth
	// packet and produces the next client payload.
	Respond(serverData []byte) ([]byte, error)

	// SessionKey returns the key established by a completed exchange, or
	// nil when the plugin does not produce one.
	SessionKey() []byte
}

// Factory builds a fresh Client for one connection attempt.
type Factory func(user, password string) Client

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
	order      []string
)

// Register adds a plugin factory under name. It is meant to be called from
// init functions; registering the same name twice panics. Registration
// order defines the default client plugin preference list.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("auth: plugin %q registered twice", name))
	}
	registry[name] = f
	order = append(order, name)
}

// Lookup returns the factory registered under name, or false.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names lists registered plugin names in registration order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]string(nil), order...)
}
