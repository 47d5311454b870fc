package wallet

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"

	"github.com/meridian-wallet/meridiand/pkg/bufferutil"
)

// TxInput describes one unspent output being consumed by a transaction,
// together with the derivation path of the key that controls it.
type TxInput struct {
	TxID           string
	VOut           uint32
	Value          uint64
	ScriptPubKey   []byte
	DerivationPath string
}

// CreateTxOpts is the struct given to the CreateAndSignTransaction method
type CreateTxOpts struct {
	Inputs        []TxInput
	TargetAddress string
	TargetAmount  uint64
	ChangeAddress string
	ChangeAmount  uint64
	Network       *chaincfg.Params
}

func (o CreateTxOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	if len(o.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	for _, in := range o.Inputs {
		if in.Value == 0 {
			return ErrZeroInputValue
		}
		if _, err := bufferutil.TxIDToHash(in.TxID); err != nil {
			return err
		}
		path, err := ParseDerivationPath(in.DerivationPath)
		if err != nil {
			return err
		}
		if err := checkDerivationPath(path); err != nil {
			return err
		}
	}
	if len(o.TargetAddress) <= 0 {
		return ErrNullTargetAddress
	}
	if !ValidateAddress(o.TargetAddress, o.Network) {
		return ErrInvalidTargetAddress
	}
	if o.TargetAmount == 0 {
		return ErrZeroOutputAmount
	}
	if o.ChangeAmount > 0 && !ValidateAddress(o.ChangeAddress, o.Network) {
		return ErrInvalidChangeAddress
	}
	return nil
}

// buildUnsignedTx assembles the unsigned wire transaction: one input per
// selected unspent, one output to the target and an optional change output.
func buildUnsignedTx(opts CreateTxOpts) (*wire.MsgTx, error) {
	tx := wire.NewMsgTx(2)

	for _, in := range opts.Inputs {
		hash, err := bufferutil.TxIDToHash(in.TxID)
		if err != nil {
			return nil, err
		}
		outpoint := wire.NewOutPoint(hash, in.VOut)
		tx.AddTxIn(wire.NewTxIn(outpoint, nil, nil))
	}

	targetScript, err := OutputScript(opts.TargetAddress, opts.Network)
	if err != nil {
		return nil, err
	}
	tx.AddTxOut(wire.NewTxOut(int64(opts.TargetAmount), targetScript))

	if opts.ChangeAmount > 0 {
		changeScript, err := OutputScript(opts.ChangeAddress, opts.Network)
		if err != nil {
			return nil, err
		}
		tx.AddTxOut(wire.NewTxOut(int64(opts.ChangeAmount), changeScript))
	}

	return tx, nil
}
