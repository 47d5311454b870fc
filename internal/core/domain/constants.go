package domain

// Statuses a prepared transaction walks through, from user input to the
// final outcome of the broadcast.
const (
	TxStatusInput = iota
	TxStatusValidated
	TxStatusCoinSelected
	TxStatusSigned
	TxStatusBroadcast
	TxStatusPending
	TxStatusFailed
)

const (
	// BranchReceive is the external chain of a BIP84 account.
	BranchReceive = 0
	// BranchChange is the internal chain of a BIP84 account.
	BranchChange = 1
)
