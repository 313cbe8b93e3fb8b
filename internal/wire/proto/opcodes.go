package proto

import "fmt"

// Wire operation codes. The numbering is fixed by the server; gaps are
// operations this client core never emits.
const (
	OpConnect          = 1
	OpExit             = 2
	OpAccept           = 3
	OpReject           = 4
	OpDisconnect       = 6
	OpResponse         = 9
	OpAttach           = 19
	OpCreate           = 20
	OpDetach           = 21
	OpTransaction      = 29
	OpCommit           = 30
	OpRollback         = 31
	OpInfoDatabase     = 40
	OpInfoTransaction  = 42
	OpCommitRetaining  = 50
	OpAllocateStmt     = 62
	OpExecute          = 63
	OpExecImmediate    = 64
	OpFetch            = 65
	OpFetchResponse    = 66
	OpFreeStmt         = 67
	OpPrepareStmt      = 68
	OpInfoSQL          = 70
	OpDummy            = 71
	OpDropDatabase     = 81
	OpServiceAttach    = 82
	OpServiceDetach    = 83
	OpServiceInfo      = 84
	OpServiceStart     = 85
	OpRollbackRetain   = 86
	OpCancel           = 91
	OpContAuth         = 92
	OpPing             = 93
	OpAcceptData       = 94
	OpAbortAuxConn     = 95
	OpCrypt            = 96
	OpCryptKeyCallback = 97
	OpCondAccept       = 98
)

// opNames maps the codes this core handles to their protocol names, for
// logging and error text.
var opNames = map[int32]string{
	OpConnect:          "op_connect",
	OpExit:             "op_exit",
	OpAccept:           "op_accept",
	OpReject:           "op_reject",
	OpDisconnect:       "op_disconnect",
	OpResponse:         "op_response",
	OpAttach:           "op_attach",
	OpCreate:           "op_create",
	OpDetach:           "op_detach",
	OpTransaction:      "op_transaction",
	OpCommit:           "op_commit",
	OpRollback:         "op_rollback",
	OpCommitRetaining:  "op_commit_retaining",
	OpAllocateStmt:     "op_allocate_statement",
	OpExecute:          "op_execute",
	OpExecImmediate:    "op_exec_immediate",
	OpFetch:            "op_fetch",
	OpFetchResponse:    "op_fetch_response",
	OpFreeStmt:         "op_free_statement",
	OpPrepareStmt:      "op_prepare_statement",
	OpInfoSQL:          "op_info_sql",
	OpDummy:            "op_dummy",
	OpInfoDatabase:     "op_info_database",
	OpInfoTransaction:  "op_info_transaction",
	OpDropDatabase:     "op_drop_database",
	OpServiceAttach:    "op_service_attach",
	OpServiceDetach:    "op_service_detach",
	OpServiceInfo:      "op_service_info",
	OpServiceStart:     "op_service_start",
	OpRollbackRetain:   "op_rollback_retaining",
	OpCancel:           "op_cancel",
	OpContAuth:         "op_cont_auth",
	OpPing:             "op_ping",
	OpAcceptData:       "op_accept_data",
	OpAbortAuxConn:     "op_abort_aux_connection",
	OpCrypt:            "op_crypt",
	OpCryptKeyCallback: "op_crypt_key_callback",
	OpCondAccept:       "op_cond_accept",
}

// OpName returns the protocol name of an operation code, or a numeric form
// for codes outside this core's vocabulary.
func OpName(op int32) string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op_%d", op)
}
