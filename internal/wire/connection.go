package wire

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rcastelli/fbwire/internal/logger"
	"github.com/rcastelli/fbwire/internal/wire/auth"
	"github.com/rcastelli/fbwire/internal/wire/pbuf"
	"github.com/rcastelli/fbwire/internal/wire/proto"
	"github.com/rcastelli/fbwire/internal/wire/wirecrypt"
)

// State is the connection lifecycle position.
type State int

const (
	// StateNew is the initial state: transport open, no handshake yet.
	StateNew State = iota

	// StateNegotiated means version negotiation, authentication and the
	// optional encryption switch completed; no attachment exists yet.
	StateNegotiated

	// StateAttached means a database or service attachment is live.
	StateAttached

	// StateFailed is terminal: some handshake or attach step errored. The
	// connection must be closed and a fresh one opened to retry.
	StateFailed

	// StateClosed is terminal: the transport has been closed.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateNegotiated:
		return "negotiated"
	case StateAttached:
		return "attached"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// maxAuthRounds bounds the cont_auth exchange so a misbehaving server
// cannot keep the handshake spinning.
const maxAuthRounds = 8

// Connection drives one attachment attempt over an exclusively owned
// transport. It is not safe for concurrent use.
type Connection struct {
	opts resolved
	c    *proto.Conn

	desc        proto.Descriptor
	authClient  auth.Client
	sessionKey  []byte
	cryptPlugin string

	db    proto.Database
	svc   proto.Service
	state State
}

// Dial opens a TCP transport to host:port and runs the handshake. The
// context and the connect timeout both bound the whole exchange.
func Dial(ctx context.Context, host string, port int, opts Options) (*Connection, error) {
	if port == 0 {
		port = DefaultPort
	}
	timeout := opts.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}
	d := net.Dialer{Timeout: timeout}
	transport, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, &proto.TransportError{Op: "dial", Err: err}
	}
	cn, err := Connect(ctx, transport, opts)
	if err != nil {
		transport.Close()
		return nil, err
	}
	return cn, nil
}

// Connect runs the handshake over an already-open transport: connect
// request, accept resolution, authentication rounds and the optional
// encryption switch. On success the connection is in StateNegotiated and
// ready for Attach or AttachService; on error it is in StateFailed and the
// transport must be discarded.
func Connect(ctx context.Context, transport io.ReadWriteCloser, opts Options) (*Connection, error) {
	r, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	cn := &Connection{
		opts:  r,
		c:     proto.NewConn(transport, r.enc, r.Metrics),
		state: StateNew,
	}
	restore := cn.applyDeadline(ctx)
	defer restore()

	start := time.Now()
	if err := cn.handshake(); err != nil {
		cn.state = StateFailed
		cn.recordHandshake(start, "failed")
		return nil, err
	}
	cn.state = StateNegotiated
	cn.recordHandshake(start, "ok")
	return cn, nil
}

func (cn *Connection) handshake() error {
	client, err := cn.newAuthClient(cn.opts.AuthPlugins[0])
	if err != nil {
		return err
	}
	cn.authClient = client

	if err := cn.sendConnect(); err != nil {
		return err
	}

	accept, err := cn.readConnectReply()
	if err != nil {
		return err
	}

	desc, err := cn.opts.Protocols.Accept(accept.Version, accept.Arch)
	if err != nil {
		return err
	}
	cn.desc = desc
	cn.c.Version = accept.Version
	cn.c.Arch = accept.Arch
	cn.c.PType = accept.Type & proto.PTypeMask
	logger.Debug("protocol accepted",
		"generation", proto.Generation(accept.Version),
		"arch", accept.Arch,
		"ptype", cn.c.PType)

	if accept.Op != proto.OpAccept {
		if err := cn.authenticate(accept); err != nil {
			return err
		}
	}
	cn.sessionKey = cn.authClient.SessionKey()

	return cn.maybeEncrypt()
}

// sendConnect writes the op_connect request: the intended operation, the
// identification blob and the candidate descriptor list.
func (cn *Connection) sendConnect() error {
	r := cn.opts
	candidates := r.Protocols.Descriptors()
	if len(candidates) == 0 {
		return proto.ErrNoCompatibleVersion
	}

	connectVersion := int32(proto.ConnectVersion2)
	for _, d := range candidates {
		if proto.Generation(d.Version()) >= 13 {
			connectVersion = proto.ConnectVersion3
		}
	}

	ident, err := identification(r, cn.authClient)
	if err != nil {
		return err
	}

	w := cn.c.W
	w.WriteInt32(proto.OpConnect)
	w.WriteInt32(proto.OpAttach)
	w.WriteInt32(connectVersion)
	w.WriteInt32(proto.ArchGeneric)
	if err := w.WriteString(r.Database, cn.c.Enc); err != nil {
		return err
	}
	w.WriteInt32(int32(len(candidates)))
	if err := w.WriteBuffer(ident); err != nil {
		return err
	}
	for _, d := range candidates {
		w.WriteInt32(d.Version())
		w.WriteInt32(d.Architecture())
		w.WriteInt32(d.MinimumType())
		w.WriteInt32(d.MaximumType())
		w.WriteInt32(int32(d.Weight()))
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_connect", Err: err}
	}
	return nil
}

// readConnectReply consumes the server's answer to op_connect and returns
// the accept packet, or the matching error for a rejection.
func (cn *Connection) readConnectReply() (*proto.Accept, error) {
	op, err := cn.c.ReadOperation()
	if err != nil {
		return nil, err
	}
	switch op {
	case proto.OpAccept, proto.OpAcceptData, proto.OpCondAccept:
		return proto.ReadAccept(cn.c, op)
	case proto.OpReject:
		return nil, proto.ErrNoCompatibleVersion
	case proto.OpResponse:
		// Servers that reject at this stage answer with a plain error
		// response instead of op_reject.
		if _, err := proto.ResponseBody(cn.c, "op_connect"); err != nil {
			return nil, err
		}
		return nil, &proto.MalformedResponseError{
			Op:     "op_connect",
			Detail: "error response carried a clean status vector",
		}
	default:
		return nil, &proto.MalformedResponseError{
			Op:     "op_connect",
			Detail: "expected an accept variant, got " + proto.OpName(op),
		}
	}
}

// authenticate runs the plugin rounds started by an op_accept_data or
// op_cond_accept reply until the server declares the exchange complete.
func (cn *Connection) authenticate(accept *proto.Accept) error {
	serverData := accept.Data
	if accept.PluginName != "" && accept.PluginName != cn.authClient.PluginName() {
		if err := cn.switchAuthPlugin(accept.PluginName); err != nil {
			return err
		}
	}

	if accept.Authenticated {
		// Completed against our initial data. The server's payload still
		// has to be folded in so the session key becomes available.
		if len(serverData) > 0 {
			if _, err := cn.authClient.Respond(serverData); err != nil {
				return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
			}
		}
		return nil
	}

	for round := 0; round < maxAuthRounds; round++ {
		payload, err := cn.authClient.Respond(serverData)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
		if err := cn.sendContAuth(payload); err != nil {
			return err
		}

		op, err := cn.c.ReadOperation()
		if err != nil {
			return err
		}
		switch op {
		case proto.OpContAuth:
			ca, err := proto.ReadContAuth(cn.c)
			if err != nil {
				return err
			}
			if ca.PluginName != "" && ca.PluginName != cn.authClient.PluginName() {
				if err := cn.switchAuthPlugin(ca.PluginName); err != nil {
					return err
				}
			}
			serverData = ca.Data
		case proto.OpResponse:
			if _, err := proto.ResponseBody(cn.c, "op_cont_auth"); err != nil {
				return err
			}
			logger.Debug("authentication complete",
				"plugin", cn.authClient.PluginName(),
				"rounds", round+1)
			return nil
		default:
			return &proto.MalformedResponseError{
				Op:     "op_cont_auth",
				Detail: "unexpected " + proto.OpName(op),
			}
		}
	}
	return fmt.Errorf("%w: no result after %d rounds", ErrAuthenticationFailed, maxAuthRounds)
}

func (cn *Connection) sendContAuth(payload []byte) error {
	w := cn.c.W
	w.WriteInt32(proto.OpContAuth)
	if err := w.WriteBuffer(payload); err != nil {
		return err
	}
	if err := w.WriteString(cn.authClient.PluginName(), nil); err != nil {
		return err
	}
	if err := w.WriteString(strings.Join(cn.opts.AuthPlugins, ","), nil); err != nil {
		return err
	}
	if err := w.WriteBuffer(nil); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_cont_auth", Err: err}
	}
	return nil
}

// switchAuthPlugin restarts the exchange with the plugin the server chose,
// which must be one the client offered.
func (cn *Connection) switchAuthPlugin(name string) error {
	for _, offered := range cn.opts.AuthPlugins {
		if offered == name {
			client, err := cn.newAuthClient(name)
			if err != nil {
				return err
			}
			cn.authClient = client
			return nil
		}
	}
	return &UnknownPluginError{Kind: "auth", Name: name}
}

func (cn *Connection) newAuthClient(name string) (auth.Client, error) {
	f, ok := auth.Lookup(name)
	if !ok {
		return nil, &UnknownPluginError{Kind: "auth", Name: name}
	}
	return f(cn.opts.User, cn.opts.Password), nil
}

// maybeEncrypt performs the transport encryption switch when the policy and
// the negotiated generation allow it: op_crypt goes out in plaintext, both
// stream directions splice in their cipher, and the server's confirmation
// arrives already enciphered.
func (cn *Connection) maybeEncrypt() error {
	if cn.opts.wireCrypt == proto.WireCryptDisabled {
		return nil
	}
	if proto.Generation(cn.c.Version) < 13 {
		if cn.opts.wireCrypt == proto.WireCryptRequired {
			return &CryptRequiredError{Reason: "the accepted protocol predates wire encryption"}
		}
		return nil
	}
	if cn.sessionKey == nil {
		if cn.opts.wireCrypt == proto.WireCryptRequired {
			return &CryptRequiredError{Reason: "no session key was established"}
		}
		return nil
	}

	var plugin wirecrypt.Plugin
	for _, name := range cn.opts.CryptPlugins {
		if p, ok := wirecrypt.Lookup(name); ok {
			plugin = p
			break
		}
	}
	if plugin == nil {
		if cn.opts.wireCrypt == proto.WireCryptRequired {
			return &CryptRequiredError{Reason: "no usable cipher plugin"}
		}
		return nil
	}

	w := cn.c.W
	w.WriteInt32(proto.OpCrypt)
	if err := w.WriteString(plugin.Name(), nil); err != nil {
		return err
	}
	if err := w.WriteString(wirecrypt.KeyTypeSymmetric, nil); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_crypt", Err: err}
	}

	encStream, err := plugin.NewEncryptor(cn.sessionKey)
	if err != nil {
		return fmt.Errorf("wire: building %s encryptor: %w", plugin.Name(), err)
	}
	decStream, err := plugin.NewDecryptor(cn.sessionKey)
	if err != nil {
		return fmt.Errorf("wire: building %s decryptor: %w", plugin.Name(), err)
	}
	if err := w.InstallCipher(encStream); err != nil {
		return err
	}
	if err := cn.c.R.InstallCipher(decStream); err != nil {
		return err
	}

	if _, err := cn.c.ReadResponse("op_crypt"); err != nil {
		return err
	}
	cn.cryptPlugin = plugin.Name()
	if cn.c.Metrics != nil {
		cn.c.Metrics.RecordEncryption(plugin.Name())
	}
	logger.Info("wire encryption enabled", "plugin", plugin.Name())
	return nil
}

// Attach completes the handshake by attaching to the database named in the
// options. On success the connection is in StateAttached.
func (cn *Connection) Attach(ctx context.Context) (proto.Database, error) {
	if cn.state != StateNegotiated {
		return nil, &StateError{Op: "attach", State: cn.state}
	}
	restore := cn.applyDeadline(ctx)
	defer restore()

	dpb, err := cn.databaseParams()
	if err != nil {
		return nil, err
	}
	db := cn.desc.NewDatabase(cn.c)
	if err := db.Attach(cn.opts.Database, dpb); err != nil {
		cn.state = StateFailed
		return nil, err
	}
	cn.db = db
	cn.state = StateAttached
	return db, nil
}

// Create completes the handshake by creating the database named in the
// options and attaching to it.
func (cn *Connection) Create(ctx context.Context) (proto.Database, error) {
	if cn.state != StateNegotiated {
		return nil, &StateError{Op: "create", State: cn.state}
	}
	restore := cn.applyDeadline(ctx)
	defer restore()

	dpb, err := cn.databaseParams()
	if err != nil {
		return nil, err
	}
	db := cn.desc.NewDatabase(cn.c)
	if err := db.Create(cn.opts.Database, dpb); err != nil {
		cn.state = StateFailed
		return nil, err
	}
	cn.db = db
	cn.state = StateAttached
	return db, nil
}

// AttachService attaches to the service manager instead of a database.
func (cn *Connection) AttachService(ctx context.Context) (proto.Service, error) {
	if cn.state != StateNegotiated {
		return nil, &StateError{Op: "attach service", State: cn.state}
	}
	restore := cn.applyDeadline(ctx)
	defer restore()

	spb, err := cn.serviceParams()
	if err != nil {
		return nil, err
	}
	svc := cn.desc.NewService(cn.c)
	if err := svc.Attach(cn.opts.Database, spb); err != nil {
		cn.state = StateFailed
		return nil, err
	}
	cn.svc = svc
	cn.state = StateAttached
	return svc, nil
}

// databaseParams builds the attach parameter buffer. Credentials ride along
// only when no plugin exchange produced a session key, which is the legacy
// server path.
func (cn *Connection) databaseParams() (*pbuf.Buffer, error) {
	r := cn.opts
	dpb := pbuf.NewDatabase(cn.c.Enc)
	if err := dpb.AddString(pbuf.DPBLcCtype, r.Charset); err != nil {
		return nil, err
	}
	if err := dpb.AddString(pbuf.DPBUserName, r.User); err != nil {
		return nil, err
	}
	if cn.sessionKey == nil && r.Password != "" {
		if err := dpb.AddString(pbuf.DPBPassword, r.Password); err != nil {
			return nil, err
		}
	}
	if r.Role != "" {
		if err := dpb.AddString(pbuf.DPBSQLRoleName, r.Role); err != nil {
			return nil, err
		}
	}
	dpb.AddByte(pbuf.DPBUTF8Filename, 1)
	return dpb, nil
}

// serviceParams builds the service-manager attach parameter buffer.
func (cn *Connection) serviceParams() (*pbuf.Buffer, error) {
	r := cn.opts
	spb := pbuf.NewService(cn.c.Enc)
	if err := spb.AddString(pbuf.SPBUserName, r.User); err != nil {
		return nil, err
	}
	if cn.sessionKey == nil && r.Password != "" {
		if err := spb.AddString(pbuf.SPBPassword, r.Password); err != nil {
			return nil, err
		}
	}
	spb.AddByte(pbuf.SPBUTF8Filename, 1)
	return spb, nil
}

// Detach sends the orderly detach for the live attachment and closes the
// transport.
func (cn *Connection) Detach() error {
	var detachErr error
	switch {
	case cn.db != nil:
		detachErr = cn.db.Detach()
	case cn.svc != nil:
		detachErr = cn.svc.Detach()
	}
	closeErr := cn.Close()
	if detachErr != nil {
		return detachErr
	}
	return closeErr
}

// Close closes the transport without an orderly detach.
func (cn *Connection) Close() error {
	if cn.state == StateClosed {
		return nil
	}
	cn.state = StateClosed
	return cn.c.Close()
}

// State returns the lifecycle position.
func (cn *Connection) State() State { return cn.state }

// Descriptor returns the accepted protocol descriptor, nil before the
// handshake resolves one.
func (cn *Connection) Descriptor() proto.Descriptor { return cn.desc }

// Conn exposes the negotiated stream state for session-level callers.
func (cn *Connection) Conn() *proto.Conn { return cn.c }

// Encrypted reports whether the transport encryption switch completed, and
// with which plugin.
func (cn *Connection) Encrypted() (bool, string) {
	return cn.cryptPlugin != "", cn.cryptPlugin
}

func (cn *Connection) recordHandshake(start time.Time, outcome string) {
	if cn.opts.Metrics == nil {
		return
	}
	generation := int32(0)
	if cn.desc != nil {
		generation = proto.Generation(cn.desc.Version())
	}
	cn.opts.Metrics.RecordHandshake(generation, time.Since(start), outcome)
}

// applyDeadline projects the context deadline onto the transport when it
// supports one, returning a restore func that clears it.
func (cn *Connection) applyDeadline(ctx context.Context) func() {
	type deadliner interface {
		SetDeadline(time.Time) error
	}
	d, ok := cn.transportDeadliner().(deadliner)
	if !ok {
		return func() {}
	}
	deadline, has := ctx.Deadline()
	if !has {
		deadline = time.Now().Add(cn.opts.ConnectTimeout)
	}
	if err := d.SetDeadline(deadline); err != nil {
		return func() {}
	}
	return func() { d.SetDeadline(time.Time{}) }
}

func (cn *Connection) transportDeadliner() any {
	return cn.c.Transport()
}
