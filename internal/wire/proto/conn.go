package proto

import (
	"errors"
	"io"
	"strconv"

	"github.com/rcastelli/fbwire/internal/wire/xdr"
	"github.com/rcastelli/fbwire/pkg/metrics"
)

// Conn is the live per-connection stream state shared by the handshake and
// the version-specific session handlers: the codec pair over the transport,
// the connection text encoder, and the negotiated protocol parameters.
//
// A Conn is owned by exactly one logical session and is not safe for
// concurrent use. The transport is handed in already connected; socket and
// TLS setup belong to the caller.
type Conn struct {
	W *xdr.Writer
	R *xdr.Reader

	// Enc is the connection character set encoder applied to text values.
	Enc xdr.Encoder

	// Metrics is optional; nil disables collection.
	Metrics metrics.WireMetrics

	// Negotiated protocol parameters, set by the handshake after accept.
	Version int32
	Arch    int32
	PType   int32

	transport io.ReadWriteCloser

	// deferred is the FIFO of responses owed for operations sent without a
	// synchronous read (lazy-send generations). They drain, in send order,
	// before the next synchronous response is read.
	deferred []deferredAck
}

// deferredAck records one response owed for a deferred operation and the
// callback that consumes it.
type deferredAck struct {
	opName string
	accept func(*Response, error)
}

// NewConn builds the stream state over an open transport. When m is non-nil
// the transport is wrapped with byte counters feeding it.
func NewConn(transport io.ReadWriteCloser, enc xdr.Encoder, m metrics.WireMetrics) *Conn {
	var r io.Reader = transport
	var w io.Writer = transport
	if m != nil {
		r = &countingReader{r: transport, m: m}
		w = &countingWriter{w: transport, m: m}
	}
	return &Conn{
		W:         xdr.NewWriter(w),
		R:         xdr.NewReader(r),
		Enc:       enc,
		Metrics:   m,
		transport: transport,
	}
}

// Close flushes nothing and closes the transport. Callers wanting an orderly
// detach send the appropriate operation first.
func (c *Conn) Close() error {
	return c.transport.Close()
}

// Transport returns the underlying transport, for deadline control.
func (c *Conn) Transport() io.ReadWriteCloser {
	return c.transport
}

// ReadOperation reads the next operation code, transparently skipping the
// keep-alive dummy packets some servers interleave.
func (c *Conn) ReadOperation() (int32, error) {
	for {
		op, err := c.R.ReadInt32()
		if err != nil {
			return 0, &TransportError{Op: "read operation", Err: err}
		}
		if op != OpDummy {
			return op, nil
		}
	}
}

// EnqueueDeferred records that a response is owed for an operation that was
// sent without a synchronous read. The accept callback receives the response
// (or its status-vector error) when the queue drains.
func (c *Conn) EnqueueDeferred(opName string, accept func(*Response, error)) {
	c.deferred = append(c.deferred, deferredAck{opName: opName, accept: accept})
}

// DeferredCount returns the number of responses currently owed.
func (c *Conn) DeferredCount() int {
	return len(c.deferred)
}

// DrainDeferred consumes the responses owed for deferred operations, in send
// order. Status-vector errors are delivered to the owning callback and do
// not abort the drain; transport and framing errors do.
func (c *Conn) DrainDeferred() error {
	for len(c.deferred) > 0 {
		ack := c.deferred[0]
		c.deferred = c.deferred[1:]
		resp, err := c.readOneResponse(ack.opName)
		if err != nil {
			var gds *GDSError
			if errors.As(err, &gds) {
				ack.accept(resp, err)
				continue
			}
			ack.accept(nil, err)
			return err
		}
		ack.accept(resp, nil)
	}
	return nil
}

// ReadResponse reads a generic response packet for the named operation: the
// op_response code, object handle, blob id, data buffer and status vector.
// A non-zero status vector is returned as the error; any other operation
// code is a malformed response. Responses owed for deferred operations are
// drained first so packets pair up in send order.
func (c *Conn) ReadResponse(opName string) (*Response, error) {
	if err := c.DrainDeferred(); err != nil {
		return nil, err
	}
	return c.readOneResponse(opName)
}

// ResponseBody reads the body of an op_response packet whose operation code
// has already been consumed by the caller.
func ResponseBody(c *Conn, opName string) (*Response, error) {
	return c.readResponseBody(opName)
}

// readOneResponse reads exactly one op_response packet.
func (c *Conn) readOneResponse(opName string) (*Response, error) {
	op, err := c.ReadOperation()
	if err != nil {
		return nil, err
	}
	if op != OpResponse {
		return nil, &MalformedResponseError{
			Op:     opName,
			Detail: "expected op_response, got " + OpName(op),
		}
	}
	return c.readResponseBody(opName)
}

// readResponseBody reads the body of an op_response packet whose operation
// code has already been consumed.
func (c *Conn) readResponseBody(opName string) (*Response, error) {
	resp := &Response{}
	var err error
	if resp.Handle, err = c.R.ReadInt32(); err != nil {
		return nil, c.framingError(opName, "object handle", err)
	}
	if resp.BlobID, err = c.R.ReadInt64(); err != nil {
		return nil, c.framingError(opName, "blob id", err)
	}
	if resp.Data, err = c.R.ReadBuffer(); err != nil {
		return nil, c.framingError(opName, "response data", err)
	}
	sv, err := c.readStatusVector(opName, resp)
	if err != nil {
		return nil, err
	}
	if sv != nil {
		return resp, sv
	}
	return resp, nil
}

// readStatusVector decodes the trailing status vector. A vector whose
// primary code is zero means success and yields nil. Warning entries never
// join the error chain; they land on the response so an operation can
// succeed while still carrying them.
func (c *Conn) readStatusVector(opName string, resp *Response) (*GDSError, error) {
	var first, tail, current *GDSError
	for {
		arg, err := c.R.ReadInt32()
		if err != nil {
			return nil, c.framingError(opName, "status vector", err)
		}
		switch arg {
		case iscArgEnd:
			if first != nil && first.Code == 0 && first.Next == nil && len(first.Args) == 0 {
				return nil, nil
			}
			return first, nil
		case iscArgGDS:
			code, err := c.R.ReadInt32()
			if err != nil {
				return nil, c.framingError(opName, "status vector code", err)
			}
			next := &GDSError{Code: code}
			switch {
			case first == nil:
				first = next
				tail = next
			case tail.Code == 0:
				// First slot was an empty success marker; replace it.
				*tail = *next
			default:
				tail.Next = next
				tail = next
			}
			current = tail
		case iscArgWarning:
			code, err := c.R.ReadInt32()
			if err != nil {
				return nil, c.framingError(opName, "status vector warning", err)
			}
			w := &GDSError{Code: code}
			if code != 0 {
				resp.Warnings = append(resp.Warnings, w)
			}
			// Trailing arguments belong to the warning, not the error chain.
			current = w
		case iscArgString, iscArgInterpreted:
			s, err := c.R.ReadString()
			if err != nil {
				return nil, c.framingError(opName, "status vector argument", err)
			}
			if current != nil {
				current.Args = append(current.Args, s)
			}
		case iscArgSQLState:
			s, err := c.R.ReadString()
			if err != nil {
				return nil, c.framingError(opName, "sqlstate", err)
			}
			if current != nil {
				current.SQLState = s
			}
		case iscArgNumber, iscArgVMSStatus:
			n, err := c.R.ReadInt32()
			if err != nil {
				return nil, c.framingError(opName, "status vector number", err)
			}
			if current != nil {
				current.Args = append(current.Args, strconv.Itoa(int(n)))
			}
		default:
			return nil, &MalformedResponseError{
				Op:     opName,
				Detail: "unknown status vector argument " + strconv.Itoa(int(arg)),
			}
		}
	}
}

// framingError classifies a read failure: framing violations surface as
// malformed responses, everything else as transport errors.
func (c *Conn) framingError(opName, field string, err error) error {
	var fe *xdr.FrameError
	if errors.As(err, &fe) {
		return &MalformedResponseError{Op: opName, Detail: field, Err: err}
	}
	return &TransportError{Op: opName + " (" + field + ")", Err: err}
}

// countingWriter feeds the outbound byte counter.
type countingWriter struct {
	w io.Writer
	m metrics.WireMetrics
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		cw.m.RecordBytesSent(n)
	}
	return n, err
}

// countingReader feeds the inbound byte counter.
type countingReader struct {
	r io.Reader
	m metrics.WireMetrics
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.m.RecordBytesReceived(n)
	}
	return n, err
}
