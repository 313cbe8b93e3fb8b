package proto

// Information request item tags shared by database, transaction and
// statement info calls, plus the framing markers of the reply buffer.
const (
	InfoEnd       = 1
	InfoTruncated = 2
	InfoError     = 3

	InfoDBID            = 4
	InfoISCVersion      = 12
	InfoPageSize        = 14
	InfoNumBuffers      = 15
	InfoCurrentMemory   = 17
	InfoMaxMemory       = 18
	InfoAttachmentID    = 22
	InfoODSVersion      = 32
	InfoODSMinorVersion = 33
	InfoBaseLevel       = 13
	InfoDBSQLDialect    = 62
	InfoFirebirdVersion = 103

	InfoSQLStmtType = 21
)

// InfoItem is one clump of an information reply buffer.
type InfoItem struct {
	Tag  byte
	Data []byte
}

// InfoResult is a decoded information reply.
type InfoResult struct {
	Items []InfoItem

	// Truncated reports that the server could not fit the full reply in
	// the requested buffer length.
	Truncated bool
}

// Get returns the data of the first item with the given tag.
func (r *InfoResult) Get(tag byte) ([]byte, bool) {
	for _, it := range r.Items {
		if it.Tag == tag {
			return it.Data, true
		}
	}
	return nil, false
}

// Int decodes the little-endian numeric value of the item with the given
// tag. Info clump values travel in VAX order like parameter buffer values.
func (r *InfoResult) Int(tag byte) (int64, bool) {
	data, ok := r.Get(tag)
	if !ok {
		return 0, false
	}
	var v int64
	for i := len(data) - 1; i >= 0; i-- {
		v = v<<8 | int64(data[i])
	}
	return v, true
}

// ParseInfo decodes an information reply buffer: a sequence of clumps, each
// a tag byte, a little-endian 16-bit length and that many data bytes, ended
// by InfoEnd or cut short by InfoTruncated.
func ParseInfo(buf []byte) (*InfoResult, error) {
	res := &InfoResult{}
	for len(buf) > 0 {
		tag := buf[0]
		buf = buf[1:]
		switch tag {
		case InfoEnd:
			return res, nil
		case InfoTruncated:
			res.Truncated = true
			return res, nil
		}
		if len(buf) < 2 {
			return nil, &MalformedResponseError{
				Op:     "info",
				Detail: "clump length header cut short",
			}
		}
		n := int(buf[0]) | int(buf[1])<<8
		buf = buf[2:]
		if n > len(buf) {
			return nil, &MalformedResponseError{
				Op:     "info",
				Detail: "clump data cut short",
			}
		}
		res.Items = append(res.Items, InfoItem{Tag: tag, Data: append([]byte(nil), buf[:n]...)})
		buf = buf[n:]
	}
	// Well-formed replies end with an explicit marker; running off the end
	// is tolerated for servers that fill the buffer exactly.
	return res, nil
}
