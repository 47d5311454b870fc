package wallet

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakePrevTxID = "5e3ab20b5cdd8b988e2bdbf27d1fb63255e49a2fd6c0e0e7ac8d212deedf6511"

func testTxInput(t *testing.T, w *Wallet, index uint32, value uint64) TxInput {
	t.Helper()
	addr, err := w.DeriveAddressAtIndex(DeriveAddressOpts{
		Index:   index,
		Branch:  BranchReceive,
		Network: &chaincfg.MainNetParams,
	})
	require.NoError(t, err)
	script, err := OutputScript(addr.Address, &chaincfg.MainNetParams)
	require.NoError(t, err)
	return TxInput{
		TxID:           fakePrevTxID,
		VOut:           index,
		Value:          value,
		ScriptPubKey:   script,
		DerivationPath: addr.DerivationPath,
	}
}

func TestCreateAndSignTransaction(t *testing.T) {
	wallet := newTestWallet(t)

	target, err := wallet.DeriveAddressAtIndex(DeriveAddressOpts{
		Index:   9,
		Branch:  BranchReceive,
		Network: &chaincfg.MainNetParams,
	})
	require.NoError(t, err)
	change, err := wallet.DeriveAddressAtIndex(DeriveAddressOpts{
		Index:   0,
		Branch:  BranchChange,
		Network: &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	txHex, err := wallet.CreateAndSignTransaction(CreateTxOpts{
		Inputs: []TxInput{
			testTxInput(t, wallet, 0, 100000),
			testTxInput(t, wallet, 1, 50000),
		},
		TargetAddress: target.Address,
		TargetAmount:  120000,
		ChangeAddress: change.Address,
		ChangeAmount:  27910,
		Network:       &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	raw, err := hex.DecodeString(txHex)
	require.NoError(t, err)

	var tx wire.MsgTx
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	assert.Len(t, tx.TxIn, 2)
	assert.Len(t, tx.TxOut, 2)
	assert.Equal(t, int64(120000), tx.TxOut[0].Value)
	assert.Equal(t, int64(27910), tx.TxOut[1].Value)
	for _, in := range tx.TxIn {
		// p2wpkh witness is [signature, pubkey]
		assert.Len(t, in.Witness, 2)
	}

	txid, err := TxHashFromHex(txHex)
	require.NoError(t, err)
	assert.Len(t, txid, 64)
}

func TestCreateAndSignTransactionNoChange(t *testing.T) {
	wallet := newTestWallet(t)

	target, err := wallet.DeriveAddressAtIndex(DeriveAddressOpts{
		Index:   3,
		Branch:  BranchReceive,
		Network: &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	txHex, err := wallet.CreateAndSignTransaction(CreateTxOpts{
		Inputs:        []TxInput{testTxInput(t, wallet, 0, 10000)},
		TargetAddress: target.Address,
		TargetAmount:  9000,
		Network:       &chaincfg.MainNetParams,
	})
	require.NoError(t, err)

	raw, err := hex.DecodeString(txHex)
	require.NoError(t, err)
	var tx wire.MsgTx
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	assert.Len(t, tx.TxOut, 1)
}

func TestFailingCreateAndSignTransaction(t *testing.T) {
	wallet := newTestWallet(t)
	input := testTxInput(t, wallet, 0, 10000)

	tests := []struct {
		name string
		opts CreateTxOpts
		err  error
	}{
		{
			"no network",
			CreateTxOpts{
				Inputs:        []TxInput{input},
				TargetAddress: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
				TargetAmount:  1000,
			},
			ErrNullNetwork,
		},
		{
			"no inputs",
			CreateTxOpts{
				TargetAddress: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
				TargetAmount:  1000,
				Network:       &chaincfg.MainNetParams,
			},
			ErrEmptyInputs,
		},
		{
			"no target",
			CreateTxOpts{
				Inputs:       []TxInput{input},
				TargetAmount: 1000,
				Network:      &chaincfg.MainNetParams,
			},
			ErrNullTargetAddress,
		},
		{
			"bad target",
			CreateTxOpts{
				Inputs:        []TxInput{input},
				TargetAddress: "notanaddress",
				TargetAmount:  1000,
				Network:       &chaincfg.MainNetParams,
			},
			ErrInvalidTargetAddress,
		},
		{
			"zero amount",
			CreateTxOpts{
				Inputs:        []TxInput{input},
				TargetAddress: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
				Network:       &chaincfg.MainNetParams,
			},
			ErrZeroOutputAmount,
		},
		{
			"change without address",
			CreateTxOpts{
				Inputs:        []TxInput{input},
				TargetAddress: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
				TargetAmount:  1000,
				ChangeAmount:  500,
				Network:       &chaincfg.MainNetParams,
			},
			ErrInvalidChangeAddress,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wallet.CreateAndSignTransaction(tt.opts)
			assert.Equal(t, tt.err, err)
		})
	}
}
