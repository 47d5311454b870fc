package explorer

// TxOutput is one output of an indexed transaction. Address may be empty
// when the script is not a standard one.
type TxOutput struct {
	Address string `json:"addr,omitempty"`
	Value   uint64 `json:"value"`
}

// TxInput is one input of an indexed transaction, described through the
// output it spends.
type TxInput struct {
	PrevOut TxOutput `json:"prev_out"`
}

// Tx is a transaction as returned by the chain-index API. Result is the
// signed net satoshi delta for the set of addresses the query was made for.
type Tx struct {
	Hash        string     `json:"hash"`
	Time        int64      `json:"time"`
	BlockHeight *int64     `json:"block_height,omitempty"`
	Fee         uint64     `json:"fee"`
	Inputs      []TxInput  `json:"inputs"`
	Outputs     []TxOutput `json:"out"`
	Result      int64      `json:"result"`
}

// Confirmed returns whether the tx has been included in a block. Pending
// transactions carry no block height.
func (t Tx) Confirmed() bool {
	return t.BlockHeight != nil
}
