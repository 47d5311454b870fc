package wallet

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// CreateAndSignTransaction builds the transaction described by opts, signs
// every input with the key re-derived from its derivation path (BIP143
// witness signatures, SIGHASH_ALL), verifies each signature script and
// returns the serialized transaction in hex format. The whole operation is
// local, no network calls are involved.
func (w *Wallet) CreateAndSignTransaction(opts CreateTxOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := w.validate(); err != nil {
		return "", err
	}

	tx, err := buildUnsignedTx(opts)
	if err != nil {
		return "", err
	}

	prevOutFetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, in := range opts.Inputs {
		prevOutFetcher.AddPrevOut(
			tx.TxIn[i].PreviousOutPoint,
			wire.NewTxOut(int64(in.Value), in.ScriptPubKey),
		)
	}
	sigHashes := txscript.NewTxSigHashes(tx, prevOutFetcher)

	for i, in := range opts.Inputs {
		if err := w.signInput(tx, i, in, sigHashes); err != nil {
			return "", err
		}
	}

	// run every input through the script engine before handing the tx out
	for i, in := range opts.Inputs {
		vm, err := txscript.NewEngine(
			in.ScriptPubKey, tx, i, txscript.StandardVerifyFlags,
			nil, sigHashes, int64(in.Value), prevOutFetcher,
		)
		if err != nil {
			return "", err
		}
		if err := vm.Execute(); err != nil {
			return "", fmt.Errorf(
				"signature verification failed for input %d: %s", i, err,
			)
		}
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

func (w *Wallet) signInput(
	tx *wire.MsgTx, inIndex int, in TxInput, sigHashes *txscript.TxSigHashes,
) error {
	prvkey, err := w.PrivateKeyForPath(in.DerivationPath)
	if err != nil {
		return err
	}

	witness, err := txscript.WitnessSignature(
		tx, sigHashes, inIndex, int64(in.Value), in.ScriptPubKey,
		txscript.SigHashAll, prvkey, true,
	)
	if err != nil {
		return fmt.Errorf(
			"signing input %d (%s:%d): %s",
			inIndex, in.TxID, in.VOut, err,
		)
	}
	tx.TxIn[inIndex].Witness = witness

	return nil
}

// TxHashFromHex returns the display-order txid of a serialized transaction.
func TxHashFromHex(txHex string) (string, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return "", err
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return "", err
	}
	return tx.TxHash().String(), nil
}
