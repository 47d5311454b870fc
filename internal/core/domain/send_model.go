package domain

import "github.com/google/uuid"

// CoinSelectionResult is the outcome of a successful coin selection. The
// invariant TotalInputValue = amount + Fee + ChangeAmount always holds, with
// ChangeAmount = 0 for transactions without a change output.
type CoinSelectionResult struct {
	SelectedUnspents []Unspent
	TotalInputValue  uint64
	Fee              uint64
	ChangeAmount     uint64
	ChangeAddress    string
	// DustAddedToFee is the would-be change amount folded into the fee
	// because it fell below the dust threshold.
	DustAddedToFee uint64
}

// HasChange returns whether the selection produced a change output.
func (r *CoinSelectionResult) HasChange() bool {
	return r.ChangeAmount > 0
}

// Keys returns the UnspentKeys of the selected unspents.
func (r *CoinSelectionResult) Keys() []UnspentKey {
	keys := make([]UnspentKey, 0, len(r.SelectedUnspents))
	for _, u := range r.SelectedUnspents {
		keys = append(keys, u.Key())
	}
	return keys
}

// PreparedTransaction is a fully signed transaction ready for broadcast,
// along with the selection it was built from and the status of its journey.
type PreparedTransaction struct {
	ID            uuid.UUID
	TxHex         string
	TxID          string
	TargetAddress string
	TargetAmount  uint64
	FeeRate       uint64
	// EstimatedSize is the estimated virtual size in vbytes of the signed
	// transaction, derived from the selection shape.
	EstimatedSize int
	Selection     CoinSelectionResult
	Status        int
}
