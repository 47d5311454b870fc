package explorer

import (
	"github.com/meridian-wallet/meridiand/pkg/bufferutil"
)

// Utxo represents an unspent transaction output in the bitcoin chain.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Script() []byte
	Confirmations() uint64
	IsConfirmed() bool
}

// NewWitnessUtxo returns a Utxo from its raw components. The hash is
// expected in display (big-endian) order, the script in hex format.
func NewWitnessUtxo(
	hash string, index uint32, value uint64,
	scriptHex string, confirmations uint64,
) Utxo {
	return witnessUtxo{
		UHash:          hash,
		UIndex:         index,
		UValue:         value,
		UScript:        scriptHex,
		UConfirmations: confirmations,
	}
}

type witnessUtxo struct {
	UHash          string `json:"tx_hash_big_endian"`
	UIndex         uint32 `json:"tx_output_n"`
	UValue         uint64 `json:"value"`
	UScript        string `json:"script"`
	UConfirmations uint64 `json:"confirmations"`
}

func (wu witnessUtxo) Hash() string {
	return wu.UHash
}

func (wu witnessUtxo) Index() uint32 {
	return wu.UIndex
}

func (wu witnessUtxo) Value() uint64 {
	return wu.UValue
}

func (wu witnessUtxo) Script() []byte {
	script, err := bufferutil.ScriptFromHex(wu.UScript)
	if err != nil {
		return nil
	}
	return script
}

func (wu witnessUtxo) Confirmations() uint64 {
	return wu.UConfirmations
}

func (wu witnessUtxo) IsConfirmed() bool {
	return wu.UConfirmations > 0
}
