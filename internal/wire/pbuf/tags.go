package pbuf

// Parameter buffer version bytes. The version byte doubles as the "tag" of
// the typed frame when a buffer is written through the codec's typed-item
// convention.
const (
	DPBVersion1 = 1 // database attach parameters
	SPBVersion  = 2 // service attach parameters
	TPBVersion3 = 3 // transaction parameters
)

// Database parameter buffer tags. Tag values are meaningful only within
// their buffer kind; the same integer means something else in a TPB or SPB.
const (
	DPBPageSize            = 4
	DPBNumBuffers          = 5
	DPBDBKeyScope          = 13
	DPBNoGarbageCollect    = 16
	DPBSweepInterval       = 22
	DPBForceWrite          = 24
	DPBUserName            = 28
	DPBPassword            = 29
	DPBPasswordEnc         = 30
	DPBLcCtype             = 48
	DPBOverwrite           = 54
	DPBConnectTimeout      = 57
	DPBDummyPacketInterval = 58
	DPBSQLRoleName         = 60
	DPBSQLDialect          = 63
	DPBSetDBCharset        = 68
	DPBProcessName         = 74
	DPBUTF8Filename        = 77
	DPBClientVersion       = 80
	DPBHostName            = 82
	DPBOSUser              = 83
	DPBSpecificAuthData    = 84
	DPBAuthPluginList      = 85
	DPBAuthPluginName      = 86
	DPBSessionTimeZone     = 91
)

// Transaction parameter buffer tags.
const (
	TPBConsistency     = 1
	TPBConcurrency     = 2
	TPBShared          = 3
	TPBProtected       = 4
	TPBExclusive       = 5
	TPBWait            = 6
	TPBNoWait          = 7
	TPBRead            = 8
	TPBWrite           = 9
	TPBLockRead        = 10
	TPBLockWrite       = 11
	TPBIgnoreLimbo     = 14
	TPBReadCommitted   = 15
	TPBAutoCommit      = 16
	TPBRecVersion      = 17
	TPBNoRecVersion    = 18
	TPBRestartRequests = 19
	TPBNoAutoUndo      = 20
	TPBLockTimeout     = 21
)

// Service parameter buffer tags.
const (
	SPBSysUserName      = 19
	SPBUserName         = 28
	SPBPassword         = 29
	SPBPasswordEnc      = 30
	SPBCommandLine      = 105
	SPBDBName           = 106
	SPBVerbose          = 107
	SPBOptions          = 108
	SPBSpecificAuthData = 111
	SPBAuthPluginName   = 112
	SPBAuthPluginList   = 113
	SPBUTF8Filename     = 114
	SPBClientVersion    = 115
	SPBRemoteProtocol   = 116
	SPBHostName         = 117
	SPBOSUser           = 118
)
