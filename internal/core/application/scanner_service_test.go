package application_test

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/meridian-wallet/meridiand/internal/core/application"
	"github.com/meridian-wallet/meridiand/pkg/explorer"
	"github.com/meridian-wallet/meridiand/pkg/wallet"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	altMnemonic  = "legal winner thank year wave sausage worth useful legal winner thank yellow"
)

var (
	ctx     = context.Background()
	network = &chaincfg.MainNetParams
)

func newTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
	require.NoError(t, err)
	return w
}

func deriveTestAddress(
	t *testing.T, w *wallet.Wallet, branch wallet.Branch, index uint32,
) *wallet.DerivedAddress {
	t.Helper()

	addr, err := w.DeriveAddressAtIndex(wallet.DeriveAddressOpts{
		Index:   index,
		Branch:  branch,
		Network: network,
	})
	require.NoError(t, err)
	return addr
}

func newTestUtxo(
	t *testing.T, addr *wallet.DerivedAddress, txid string, vout uint32,
	value, confirmations uint64,
) explorer.Utxo {
	t.Helper()

	script, err := wallet.OutputScript(addr.Address, network)
	require.NoError(t, err)
	return explorer.NewWitnessUtxo(
		txid, vout, value, hex.EncodeToString(script), confirmations,
	)
}

func TestScanGapLimitTermination(t *testing.T) {
	w := newTestWallet(t)
	explorerSvc := newMockExplorer()

	// receive indexes 0..4 used, change branch untouched
	for i := uint32(0); i < 5; i++ {
		addr := deriveTestAddress(t, w, wallet.BranchReceive, i)
		explorerSvc.markUsed(addr.Address, 10000, 1)
	}

	scannerSvc := application.NewScannerService(explorerSvc, network)
	result, unspents, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)

	require.Equal(t, 4, result.HighestUsedReceiveIndex)
	require.Equal(t, -1, result.HighestUsedChangeIndex)
	require.Len(t, result.UsedAddresses(), 5)
	require.Equal(t, uint64(50000), result.TotalBalance)
	require.Zero(t, result.DegradedLookups)
	require.Empty(t, unspents)

	// receive stops inside the third batch after 20 consecutive unused
	// addresses (30 queried), change stops after two full batches (20)
	require.Equal(t, 50, explorerSvc.queriedAddresses)
}

func TestScanFreshWalletShortCircuits(t *testing.T) {
	w := newTestWallet(t)
	explorerSvc := newMockExplorer()
	scannerSvc := application.NewScannerService(explorerSvc, network)

	result, unspents, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)

	require.Equal(t, -1, result.HighestUsedReceiveIndex)
	require.Equal(t, -1, result.HighestUsedChangeIndex)
	require.Zero(t, result.TotalBalance)
	require.Empty(t, unspents)

	// with no used address neither history nor unspents are fetched
	require.Zero(t, explorerSvc.historyCalls)
	require.Zero(t, explorerSvc.unspentCalls)
}

func TestScanIsIdempotent(t *testing.T) {
	w := newTestWallet(t)
	explorerSvc := newMockExplorer()
	for i := uint32(0); i < 3; i++ {
		addr := deriveTestAddress(t, w, wallet.BranchReceive, i)
		explorerSvc.markUsed(addr.Address, 5000, 2)
	}

	scannerSvc := application.NewScannerService(explorerSvc, network)

	first, _, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)
	second, _, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)

	require.Equal(t, first.HighestUsedReceiveIndex, second.HighestUsedReceiveIndex)
	require.Equal(t, first.HighestUsedChangeIndex, second.HighestUsedChangeIndex)
	require.Equal(t, first.TotalBalance, second.TotalBalance)
	require.Equal(t, first.Addresses, second.Addresses)
}

func TestScanFallsBackToPerAddressLookups(t *testing.T) {
	w := newTestWallet(t)
	explorerSvc := newMockExplorer()
	explorerSvc.failMultiAddr = true

	usedAddr := deriveTestAddress(t, w, wallet.BranchReceive, 0)
	explorerSvc.markUsed(usedAddr.Address, 7000, 1)

	// one address fails even the per-address path and degrades to zero
	degradedAddr := deriveTestAddress(t, w, wallet.BranchReceive, 1)
	explorerSvc.failBalanceFor[degradedAddr.Address] = true

	scannerSvc := application.NewScannerService(explorerSvc, network)
	result, _, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)

	require.Equal(t, 0, result.HighestUsedReceiveIndex)
	require.Equal(t, uint64(7000), result.TotalBalance)
	require.Equal(t, 1, result.DegradedLookups)
	require.True(t, result.IsDegraded())
}

func TestScanCollectsUnspentsWithDerivationPaths(t *testing.T) {
	w := newTestWallet(t)
	explorerSvc := newMockExplorer()

	addr := deriveTestAddress(t, w, wallet.BranchReceive, 0)
	explorerSvc.markUsed(addr.Address, 100000, 1)
	explorerSvc.addUtxo(addr.Address, newTestUtxo(
		t, addr,
		"e9b1f4a2c3d45f67e9b1f4a2c3d45f67e9b1f4a2c3d45f67e9b1f4a2c3d45f67",
		0, 100000, 6,
	))

	scannerSvc := application.NewScannerService(explorerSvc, network)
	result, unspents, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)

	require.Equal(t, uint64(100000), result.TotalBalance)
	require.Len(t, unspents, 1)
	require.Equal(t, addr.Address, unspents[0].Address)
	require.Equal(t, addr.DerivationPath, unspents[0].DerivationPath)
	require.Equal(t, uint64(6), unspents[0].Confirmations)
	require.Equal(t, 1, explorerSvc.historyCalls)
}

func TestScanMapsTransactionHistory(t *testing.T) {
	w := newTestWallet(t)
	explorerSvc := newMockExplorer()

	addr := deriveTestAddress(t, w, wallet.BranchReceive, 0)
	explorerSvc.markUsed(addr.Address, 100000, 1)

	height := int64(800000)
	explorerSvc.txs = []explorer.Tx{{
		Hash:        "4444444444444444444444444444444444444444444444444444444444444444",
		Time:        1700000000,
		BlockHeight: &height,
		Fee:         1410,
		Inputs: []explorer.TxInput{
			{PrevOut: explorer.TxOutput{Address: "bc1qsender", Value: 120000}},
		},
		Outputs: []explorer.TxOutput{
			{Address: addr.Address, Value: 100000},
			{Value: 18590},
		},
		Result: 100000,
	}}

	scannerSvc := application.NewScannerService(explorerSvc, network)
	result, _, err := scannerSvc.ScanWallet(ctx, w)
	require.NoError(t, err)

	require.Len(t, result.Transactions, 1)
	tx := result.Transactions[0]
	require.True(t, tx.Confirmed())
	require.Equal(t, uint64(1410), tx.Fee)

	// counterparties survive the mapping, non-standard scripts keep an empty
	// address
	require.Len(t, tx.Inputs, 1)
	require.Equal(t, "bc1qsender", tx.Inputs[0].Address)
	require.Equal(t, uint64(120000), tx.Inputs[0].Value)
	require.Len(t, tx.Outputs, 2)
	require.Equal(t, addr.Address, tx.Outputs[0].Address)
	require.Empty(t, tx.Outputs[1].Address)
	require.Equal(t, uint64(18590), tx.Outputs[1].Value)
}
