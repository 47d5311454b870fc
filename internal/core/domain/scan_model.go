package domain

import "time"

// AddressBalance is the per-address outcome of a discovery lookup.
type AddressBalance struct {
	Address        string
	DerivationPath string
	Branch         uint32
	Index          uint32
	Balance        uint64
	TxCount        int
}

// IsUsed returns whether the address appeared in at least one transaction.
func (a AddressBalance) IsUsed() bool {
	return a.TxCount > 0
}

// TxEntry is one input or output of a wallet transaction, reduced to the
// address it moves funds from or to. Address is empty when the chain index
// could not resolve the script to one.
type TxEntry struct {
	Address string
	Value   uint64
}

// WalletTransaction is a wallet-level view of a chain transaction as
// reported by the chain index.
type WalletTransaction struct {
	TxID        string
	Time        int64
	BlockHeight *int64
	Fee         uint64
	Inputs      []TxEntry
	Outputs     []TxEntry
	Result      int64
}

// Confirmed returns whether the transaction is included in a block.
func (t WalletTransaction) Confirmed() bool {
	return t.BlockHeight != nil
}

// WalletScanResult is the aggregate produced by a full gap-limit scan of
// both branches of the wallet account. It is also the unit of persistence,
// stored under the wallet fingerprint so that a later session can serve
// stale data while a fresh scan is in flight. It never contains key
// material.
type WalletScanResult struct {
	Fingerprint string `badgerhold:"key"`
	Network     string
	// Highest used index per branch, -1 when the branch has no used address.
	HighestUsedReceiveIndex int
	HighestUsedChangeIndex  int
	Addresses               []AddressBalance
	Transactions            []WalletTransaction
	TotalBalance            uint64
	// DegradedLookups counts the addresses whose balance lookup failed on
	// both the batched and the per-address path and was recorded as zero.
	DegradedLookups int
	ScannedAt       time.Time
}

// UsedAddresses returns the discovered addresses with at least one
// transaction.
func (r *WalletScanResult) UsedAddresses() []AddressBalance {
	used := make([]AddressBalance, 0, len(r.Addresses))
	for _, a := range r.Addresses {
		if a.IsUsed() {
			used = append(used, a)
		}
	}
	return used
}

// IsDegraded returns whether any lookup degraded to a zero entry, in which
// case the total balance is a lower bound.
func (r *WalletScanResult) IsDegraded() bool {
	return r.DegradedLookups > 0
}
