package wire

import (
	"time"

	"github.com/rcastelli/fbwire/internal/wire/encoding"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/pkg/metrics"
)

// Default connection parameters.
const (
	DefaultPort           = 3050
	DefaultConnectTimeout = 10 * time.Second
	DefaultCharset        = "UTF8"
)

// DefaultAuthPlugins is the client plugin preference order advertised when
// the caller does not override it.
var DefaultAuthPlugins = []string{"Srp256", "Srp", "Legacy_Auth"}

// DefaultCryptPlugins is the transport cipher preference order.
var DefaultCryptPlugins = []string{"ChaCha", "Arc4"}

// Options configures one connection attempt. The zero value is not usable;
// call (*Options).withDefaults via Connect, which fills the optional fields.
type Options struct {
	// Database is the attachment path sent in the connect request, for
	// example "/data/employee.fdb" or "service_mgr".
	Database string

	// User and Password are the credentials handed to the auth plugins
	// (and, for legacy servers, to the attach parameter buffer).
	User     string
	Password string

	// Role is the optional SQL role requested at attach.
	Role string

	// AuthPlugins is the ordered plugin preference list. Empty means
	// DefaultAuthPlugins.
	AuthPlugins []string

	// WireCrypt is the transport encryption policy (proto.WireCrypt*).
	// The zero value means WireCryptEnabled.
	WireCrypt *int32

	// CryptPlugins is the cipher preference list. Empty means
	// DefaultCryptPlugins.
	CryptPlugins []string

	// Charset selects the connection text encoding. Empty means UTF8.
	Charset string

	// ConnectTimeout bounds Dial and the handshake. Zero means
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// Protocols overrides the advertised candidate set. Nil means the
	// process default collection.
	Protocols *proto.Collection

	// Metrics is optional; nil disables collection.
	Metrics metrics.WireMetrics
}

// resolved is an Options copy with every optional field filled in.
type resolved struct {
	Options
	wireCrypt int32
	enc       encoding.Encoder
}

func (o Options) withDefaults() (resolved, error) {
	r := resolved{Options: o}
	if len(r.AuthPlugins) == 0 {
		r.AuthPlugins = DefaultAuthPlugins
	}
	if len(r.CryptPlugins) == 0 {
		r.CryptPlugins = DefaultCryptPlugins
	}
	if r.WireCrypt != nil {
		r.wireCrypt = *r.WireCrypt
	} else {
		r.wireCrypt = proto.WireCryptEnabled
	}
	if r.Charset == "" {
		r.Charset = DefaultCharset
	}
	if r.ConnectTimeout == 0 {
		r.ConnectTimeout = DefaultConnectTimeout
	}
	if r.Protocols == nil {
		r.Protocols = defaultProtocols
	}
	enc, err := encoding.ForCharset(r.Charset)
	if err != nil {
		return resolved{}, err
	}
	r.enc = enc
	return r, nil
}
