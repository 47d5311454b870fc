package domain

import (
	"context"

	"github.com/google/uuid"
)

// UnspentRepository gives access to the set of UTXOs owned by the wallets
// known to the store. All the queries returning sets or balances are scoped
// by wallet fingerprint.
type UnspentRepository interface {
	AddUnspents(ctx context.Context, unspents []Unspent) error
	GetAllUnspents(ctx context.Context, fingerprint string) []Unspent
	GetAvailableUnspents(ctx context.Context, fingerprint string) ([]Unspent, error)
	GetBalance(
		ctx context.Context, fingerprint string, addresses []string,
	) (uint64, error)
	GetUnlockedBalance(
		ctx context.Context, fingerprint string, addresses []string,
	) (uint64, error)
	GetUnspentForKey(ctx context.Context, key UnspentKey) (*Unspent, error)
	// LockUnspents locks all the given unspents for the given owner, or none
	// of them if any is already locked by another owner.
	LockUnspents(ctx context.Context, keys []UnspentKey, txID uuid.UUID) error
	UnlockUnspents(ctx context.Context, keys []UnspentKey) error
	// ReplaceUnspents swaps the stored set of the given wallet with the given
	// one, leaving the unspents of other wallets untouched.
	ReplaceUnspents(ctx context.Context, fingerprint string, unspents []Unspent) error
}
