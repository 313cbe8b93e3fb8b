package proto

// Response is the generic op_response packet body: an object handle, a blob
// id, an opaque data buffer and (separately surfaced as an error) the status
// vector.
type Response struct {
	Handle int32
	BlobID int64
	Data   []byte

	// Warnings are isc_arg_warning entries from the status vector. They do
	// not fail the operation; a vector can carry them alongside a success
	// primary code.
	Warnings []*GDSError
}

// Accept describes the server's answer to op_connect: which protocol
// generation and architecture it selected, and - for the data-carrying
// accept variants of v13 - the authentication state.
type Accept struct {
	// Op is the accept variant received: OpAccept, OpAcceptData or
	// OpCondAccept.
	Op int32

	// Version is the accepted protocol version, as sent by the server
	// (masked form for generations 11 and later).
	Version int32

	// Arch is the accepted architecture.
	Arch int32

	// Type is the accepted packet type.
	Type int32

	// Data is the auth plugin's server payload (op_accept_data and
	// op_cond_accept only).
	Data []byte

	// PluginName is the auth plugin the server chose to continue with.
	PluginName string

	// Authenticated reports whether the server considers authentication
	// complete without further rounds.
	Authenticated bool

	// Keys is the server's wire-crypt key negotiation blob.
	Keys []byte
}

// ReadAccept reads one of the accept variants after the operation code has
// already been consumed by the caller.
func ReadAccept(c *Conn, op int32) (*Accept, error) {
	a := &Accept{Op: op}
	var err error
	if a.Version, err = c.R.ReadInt32(); err != nil {
		return nil, &TransportError{Op: "read accept", Err: err}
	}
	if a.Arch, err = c.R.ReadInt32(); err != nil {
		return nil, &TransportError{Op: "read accept", Err: err}
	}
	if a.Type, err = c.R.ReadInt32(); err != nil {
		return nil, &TransportError{Op: "read accept", Err: err}
	}
	if op == OpAccept {
		return a, nil
	}
	if a.Data, err = c.R.ReadBuffer(); err != nil {
		return nil, c.framingError("read accept", "auth data", err)
	}
	if a.PluginName, err = c.R.ReadString(); err != nil {
		return nil, c.framingError("read accept", "plugin name", err)
	}
	flag, err := c.R.ReadInt32()
	if err != nil {
		return nil, &TransportError{Op: "read accept", Err: err}
	}
	a.Authenticated = flag != 0
	if a.Keys, err = c.R.ReadBuffer(); err != nil {
		return nil, c.framingError("read accept", "keys", err)
	}
	return a, nil
}

// ContAuth is the op_cont_auth packet the server sends when authentication
// needs another round.
type ContAuth struct {
	Data       []byte
	PluginName string
	PluginList string
	Keys       []byte
}

// ReadContAuth reads an op_cont_auth packet body.
func ReadContAuth(c *Conn) (*ContAuth, error) {
	ca := &ContAuth{}
	var err error
	if ca.Data, err = c.R.ReadBuffer(); err != nil {
		return nil, c.framingError("read cont_auth", "auth data", err)
	}
	if ca.PluginName, err = c.R.ReadString(); err != nil {
		return nil, c.framingError("read cont_auth", "plugin name", err)
	}
	if ca.PluginList, err = c.R.ReadString(); err != nil {
		return nil, c.framingError("read cont_auth", "plugin list", err)
	}
	if ca.Keys, err = c.R.ReadBuffer(); err != nil {
		return nil, c.framingError("read cont_auth", "keys", err)
	}
	return ca, nil
}

// FetchStatus is the status word of an op_fetch_response packet.
type FetchStatus int32

const (
	// FetchRow precedes one row of message data.
	FetchRow FetchStatus = 0

	// FetchNoMore reports cursor exhaustion.
	FetchNoMore FetchStatus = 100
)
