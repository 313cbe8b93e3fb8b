package proto

// Protocol generations. Version 10 travels unmasked; later generations carry
// the protocol flag in the upper bits of the 16-bit version word, both in the
// client's candidate list and in the server's accept reply.
const (
	ProtocolFlag = 0x8000

	ProtocolVersion10 = 10
	ProtocolVersion11 = ProtocolFlag | 11
	ProtocolVersion12 = ProtocolFlag | 12
	ProtocolVersion13 = ProtocolFlag | 13
)

// Generation strips the protocol flag from a wire version value, yielding
// the plain generation number (10, 11, ...).
func Generation(version int32) int32 {
	return version &^ ProtocolFlag
}

// Connect request versions. Version 3 is required once v13 candidates (and
// their plugin-based authentication) are advertised.
const (
	ConnectVersion2 = 2
	ConnectVersion3 = 3
)

// Architecture identifiers. This client always identifies as generic, which
// disables architecture-specific shortcut encodings.
const (
	ArchGeneric = 1
)

// Packet (p_type) variants a candidate advertises as its minimum and maximum
// supported types.
const (
	PTypeRPC       = 2
	PTypeBatchSend = 3
	PTypeLazySend  = 5

	// PTypeMask strips the flag bits some servers fold into the accepted
	// packet type.
	PTypeMask = 0xFF
)

// Identification blob tags (CNCT_*), sent inside op_connect.
const (
	CnctUser             = 1
	CnctPasswd           = 2
	CnctHost             = 4
	CnctGroup            = 5
	CnctUserVerification = 6
	CnctSpecificData     = 7
	CnctPluginName       = 8
	CnctLogin            = 9
	CnctPluginList       = 10
	CnctClientCrypt      = 11
)

// Wire-crypt negotiation levels carried in the CnctClientCrypt item.
const (
	WireCryptDisabled = 0
	WireCryptEnabled  = 1
	WireCryptRequired = 2
)

// Cancel kinds carried by op_cancel (generation 12 and later).
const (
	CancelDisable = 1
	CancelEnable  = 2
	CancelRaise   = 3
	CancelAbort   = 4
)

// Status vector argument codes.
const (
	iscArgEnd         = 0
	iscArgGDS         = 1
	iscArgString      = 2
	iscArgNumber      = 4
	iscArgInterpreted = 5
	iscArgVMSStatus   = 6
	iscArgWarning     = 18
	iscArgSQLState    = 19
)

// GDS error codes this core reacts to by name.
const (
	// gdsLoginFailed is "Your user name and password are not defined".
	gdsLoginFailed = 335544472

	// gdsConnectReject is the generic connection rejection.
	gdsConnectReject = 335544421
)
