package wallet

const (
	// TxOverheadVSize is the fixed virtual size of a native-segwit
	// transaction: version, marker/flag, in/out counts, locktime.
	TxOverheadVSize = 11
	// TxInputVSize is the virtual size of one P2WPKH input including its
	// discounted witness (signature + pubkey).
	TxInputVSize = 68
	// TxOutputVSize is the virtual size of one P2WPKH output.
	TxOutputVSize = 31

	// DustLimit is the minimum economically meaningful output value in
	// satoshis. Outputs below it are not created; the remainder is folded
	// into the fee instead.
	DustLimit = 546
)

// EstimateTxSize returns the estimated virtual size in vbytes of a
// native-segwit transaction with the given number of inputs and outputs.
func EstimateTxSize(numInputs, numOutputs int) int {
	return TxOverheadVSize + numInputs*TxInputVSize + numOutputs*TxOutputVSize
}

// EstimateFee returns the fee in satoshis for a transaction of the given
// shape at the given fee rate in sat/vbyte. It is non-decreasing in all of
// its arguments.
func EstimateFee(numInputs, numOutputs int, feeRate uint64) uint64 {
	return uint64(EstimateTxSize(numInputs, numOutputs)) * feeRate
}

// InputEffectiveValue returns the value an input contributes to a selection
// after paying for its own vsize at the given fee rate. The second return
// value is false when the input is uneconomical to spend.
func InputEffectiveValue(value, feeRate uint64) (uint64, bool) {
	cost := uint64(TxInputVSize) * feeRate
	if value <= cost {
		return 0, false
	}
	return value - cost, true
}
