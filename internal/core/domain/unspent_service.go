package domain

import (
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/meridian-wallet/meridiand/pkg/explorer"
)

// IsKeyEqual returns whether the provided UnspentKey matches that of the
// current unspent.
func (u *Unspent) IsKeyEqual(key UnspentKey) bool {
	return u.TxID == key.TxID && u.VOut == key.VOut
}

// IsConfirmed returns whether the unspent is included in a block.
func (u *Unspent) IsConfirmed() bool {
	return u.Confirmations > 0
}

// IsLocked returns whether the unspent is locked by some not yet broadcasted
// transaction.
func (u *Unspent) IsLocked() bool {
	return u.Locked
}

// Key returns the UnspentKey of the current unspent.
func (u *Unspent) Key() UnspentKey {
	return UnspentKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}

// Lock marks the current unspent as locked, referring to some pending
// transaction by its UUID. Locking an unspent already locked by the same
// owner is a no-op.
func (u *Unspent) Lock(txID *uuid.UUID) error {
	if u.IsLocked() {
		if txID.String() != u.LockedBy.String() {
			return ErrUnspentAlreadyLocked
		}
		return nil
	}

	u.Locked = true
	u.LockedBy = txID
	return nil
}

// Unlock marks the current locked unspent as unlocked.
func (u *Unspent) Unlock() {
	u.Locked = false
	u.LockedBy = nil
}

// ToUtxo returns the current unspent as an explorer.Utxo interface.
func (u *Unspent) ToUtxo() explorer.Utxo {
	return explorer.NewWitnessUtxo(
		u.TxID,
		u.VOut,
		u.Value,
		hex.EncodeToString(u.ScriptPubKey),
		u.Confirmations,
	)
}

// NewUnspentFromUtxo maps an explorer utxo to an owned unspent, annotated
// with the address it pays to and its derivation path.
func NewUnspentFromUtxo(
	utxo explorer.Utxo, address, derivationPath string,
) Unspent {
	return Unspent{
		TxID:           utxo.Hash(),
		VOut:           utxo.Index(),
		Value:          utxo.Value(),
		ScriptPubKey:   utxo.Script(),
		Address:        address,
		DerivationPath: derivationPath,
		Confirmations:  utxo.Confirmations(),
	}
}
