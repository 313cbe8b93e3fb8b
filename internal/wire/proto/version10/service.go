package version10

import (
	"github.com/rcastelli/fbwire/internal/wire/pbuf"
	"github.com/rcastelli/fbwire/internal/wire/proto"
)

// Service is the generation 10 service-manager session handler.
type Service struct {
	c      *proto.Conn
	handle int32
}

// NewService builds a v10 service handler over an accepted connection.
func NewService(c *proto.Conn) *Service {
	return &Service{c: c}
}

// Handle returns the service object handle.
func (s *Service) Handle() int32 { return s.handle }

// Attach sends op_service_attach with the service parameter buffer.
func (s *Service) Attach(name string, spb *pbuf.Buffer) error {
	w := s.c.W
	if err := w.WriteInt32(proto.OpServiceAttach); err != nil {
		return &proto.TransportError{Op: "op_service_attach", Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // object id
		return &proto.TransportError{Op: "op_service_attach", Err: err}
	}
	if err := w.WriteString(name, s.c.Enc); err != nil {
		return err
	}
	if err := w.WriteTyped(spb.Type(), spb); err != nil {
		return &proto.TransportError{Op: "op_service_attach", Err: err}
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_service_attach", Err: err}
	}
	resp, err := s.c.ReadResponse("op_service_attach")
	if err != nil {
		return err
	}
	s.handle = resp.Handle
	return nil
}

// Detach sends op_service_detach and releases the handle.
func (s *Service) Detach() error {
	w := s.c.W
	if err := w.WriteInt32(proto.OpServiceDetach); err != nil {
		return &proto.TransportError{Op: "op_service_detach", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return &proto.TransportError{Op: "op_service_detach", Err: err}
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_service_detach", Err: err}
	}
	if _, err := s.c.ReadResponse("op_service_detach"); err != nil {
		return err
	}
	s.handle = 0
	return nil
}

// Start sends op_service_start with the action request blob.
func (s *Service) Start(request []byte) error {
	w := s.c.W
	if err := w.WriteInt32(proto.OpServiceStart); err != nil {
		return &proto.TransportError{Op: "op_service_start", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return &proto.TransportError{Op: "op_service_start", Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // object id
		return &proto.TransportError{Op: "op_service_start", Err: err}
	}
	if err := w.WriteBuffer(request); err != nil {
		return &proto.TransportError{Op: "op_service_start", Err: err}
	}
	if err := w.Flush(); err != nil {
		return &proto.TransportError{Op: "op_service_start", Err: err}
	}
	_, err := s.c.ReadResponse("op_service_start")
	return err
}

// Query sends op_service_info and returns the raw reply buffer.
func (s *Service) Query(sendItems, requestItems []byte, maxLength int32) ([]byte, error) {
	w := s.c.W
	if err := w.WriteInt32(proto.OpServiceInfo); err != nil {
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	if err := w.WriteInt32(s.handle); err != nil {
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	if err := w.WriteInt32(0); err != nil { // incarnation
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	if err := w.WriteBuffer(sendItems); err != nil {
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	if err := w.WriteBuffer(requestItems); err != nil {
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	if err := w.WriteInt32(maxLength); err != nil {
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	if err := w.Flush(); err != nil {
		return nil, &proto.TransportError{Op: "op_service_info", Err: err}
	}
	resp, err := s.c.ReadResponse("op_service_info")
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
