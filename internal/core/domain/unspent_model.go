package domain

import (
	"github.com/google/uuid"
)

// UnspentKey represent the ID of an Unspent, composed by its txid and vout.
type UnspentKey struct {
	TxID string
	VOut uint32
}

// Unspent is the data structure representing a native segwit UTXO owned by
// a wallet, along with the derivation path needed to re-derive its signing
// key and whether it is locked by some not yet broadcasted transaction.
// Fingerprint identifies the owning wallet so that unspents of different
// wallets sharing the same store never leak into each other's queries.
type Unspent struct {
	TxID           string
	VOut           uint32
	Value          uint64
	ScriptPubKey   []byte
	Address        string
	DerivationPath string
	Fingerprint    string
	Confirmations  uint64
	Locked         bool
	LockedBy       *uuid.UUID
}
