package explorer

// AddressInfo is the indexed summary of a single address: its current
// balance and the number of transactions it appears in.
type AddressInfo struct {
	Address      string `json:"address"`
	FinalBalance uint64 `json:"final_balance"`
	TxCount      int    `json:"n_tx"`
}

// MultiAddressInfo is the response of a batched multi-address query: one
// summary per requested address plus a page of the combined tx history.
type MultiAddressInfo struct {
	Addresses []AddressInfo `json:"addresses"`
	Txs       []Tx          `json:"txs"`
}

// FeeEstimates holds the recommended fee rates in sat/vbyte per
// confirmation target tier.
type FeeEstimates struct {
	FastestFee  uint64 `json:"fastestFee"`
	HalfHourFee uint64 `json:"halfHourFee"`
	HourFee     uint64 `json:"hourFee"`
	EconomyFee  uint64 `json:"economyFee"`
	MinimumFee  uint64 `json:"minimumFee"`
}

// Service is the representation of a chain-index API that allows to fetch
// address balances, transaction history and unspent outputs, and to
// broadcast transactions.
type Service interface {
	// GetMultiAddressInfo fetches balance and tx-count summaries for the
	// given list of addresses in a single request, along with a page of
	// their combined transaction history.
	GetMultiAddressInfo(
		addresses []string, txLimit, offset int,
	) (*MultiAddressInfo, error)
	// GetBalance fetches the summary of a single address. It is the
	// per-address fallback of GetMultiAddressInfo.
	GetBalance(address string) (*AddressInfo, error)
	// GetUnspents fetches the unspent outputs of the given address.
	GetUnspents(address string) ([]Utxo, error)
	// GetUnspentsForAddresses fetches the unspent outputs of the given list
	// of addresses.
	GetUnspentsForAddresses(addresses []string) ([]Utxo, error)
	// GetFeeEstimates returns the current recommended fee rate tiers.
	GetFeeEstimates() (*FeeEstimates, error)
	// BroadcastTransaction attempts to add the given tx in hex format to the
	// mempool and returns its tx hash.
	BroadcastTransaction(txHex string) (txid string, err error)
}
