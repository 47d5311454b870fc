package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-wallet/meridiand/internal/core/application"
	"github.com/meridian-wallet/meridiand/internal/core/domain"
	"github.com/meridian-wallet/meridiand/internal/infrastructure/storage/db/inmemory"
)

func TestLoginLogout(t *testing.T) {
	repoManager := inmemory.NewRepoManager()
	scanner := &stubScanner{result: &domain.WalletScanResult{
		HighestUsedReceiveIndex: -1,
		HighestUsedChangeIndex:  -1,
	}}
	sessionSvc := application.NewSessionService(scanner, repoManager, network)

	require.False(t, sessionSvc.IsLoggedIn())

	snapshot, err := sessionSvc.Login(ctx, testMnemonic)
	require.NoError(t, err)
	require.Nil(t, snapshot)
	require.True(t, sessionSvc.IsLoggedIn())

	_, err = sessionSvc.Login(ctx, testMnemonic)
	require.EqualError(t, err, application.ErrAlreadyLoggedIn.Error())

	sessionSvc.Logout()
	require.False(t, sessionSvc.IsLoggedIn())
	require.Nil(t, sessionSvc.LastScan())

	_, err = sessionSvc.RefreshBalance(ctx)
	require.EqualError(t, err, application.ErrNotLoggedIn.Error())
}

func TestFailingLoginInvalidMnemonic(t *testing.T) {
	sessionSvc := application.NewSessionService(
		&stubScanner{}, inmemory.NewRepoManager(), network,
	)

	_, err := sessionSvc.Login(ctx, "legal winner thank year wave")
	require.EqualError(t, err, application.ErrInvalidMnemonic.Error())
}

func TestLoginServesStaleSnapshot(t *testing.T) {
	w := newTestWallet(t)

	repoManager := inmemory.NewRepoManager()
	err := repoManager.SnapshotRepository().AddOrUpdateSnapshot(
		ctx, domain.WalletScanResult{
			Fingerprint:             w.Fingerprint(),
			Network:                 network.Name,
			HighestUsedReceiveIndex: 2,
			HighestUsedChangeIndex:  -1,
			TotalBalance:            30000,
		},
	)
	require.NoError(t, err)

	sessionSvc := application.NewSessionService(
		&stubScanner{}, repoManager, network,
	)

	snapshot, err := sessionSvc.Login(ctx, testMnemonic)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.Equal(t, uint64(30000), snapshot.TotalBalance)

	// the stale snapshot also drives the next-address accessors
	addr, err := sessionSvc.NextReceiveAddress()
	require.NoError(t, err)
	require.Equal(t, uint32(3), addr.Index)
}

func TestRefreshBalanceCommitsScan(t *testing.T) {
	_, sessionSvc, _ := newTestServices(t, defaultTestCoins())

	balance, err := sessionSvc.GetBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(160000), balance.Total)
	require.Equal(t, uint64(160000), balance.Spendable)

	unspents, err := sessionSvc.SpendableUnspents(ctx)
	require.NoError(t, err)
	require.Len(t, unspents, 3)

	lastScan := sessionSvc.LastScan()
	require.NotNil(t, lastScan)
	require.Equal(t, 1, lastScan.HighestUsedReceiveIndex)
	require.Equal(t, 0, lastScan.HighestUsedChangeIndex)

	changeAddr, err := sessionSvc.NextChangeAddress()
	require.NoError(t, err)
	require.Equal(t, uint32(1), changeAddr.Index)
}

func TestStaleScanIsDiscarded(t *testing.T) {
	w := newTestWallet(t)
	repoManager := inmemory.NewRepoManager()
	scanner := &stubScanner{
		result: &domain.WalletScanResult{
			HighestUsedReceiveIndex: 0,
			HighestUsedChangeIndex:  -1,
			TotalBalance:            5000,
		},
		unspents: []domain.Unspent{
			{TxID: "aa", VOut: 0, Value: 5000, Confirmations: 1},
		},
	}
	sessionSvc := application.NewSessionService(scanner, repoManager, network)

	_, err := sessionSvc.Login(ctx, testMnemonic)
	require.NoError(t, err)

	// the session is torn down while the scan is in flight
	scanner.onScan = sessionSvc.Logout

	_, err = sessionSvc.RefreshBalance(ctx)
	require.EqualError(t, err, application.ErrStaleScan.Error())
	require.Nil(t, sessionSvc.LastScan())

	// nothing of the abandoned scan may land in the store
	require.Empty(
		t, repoManager.UnspentRepository().GetAllUnspents(ctx, w.Fingerprint()),
	)
}

func TestLogoutIsolatesUnspentsAcrossWallets(t *testing.T) {
	_, sessionSvc, _ := newTestServices(t, defaultTestCoins())

	unspents, err := sessionSvc.SpendableUnspents(ctx)
	require.NoError(t, err)
	require.Len(t, unspents, 3)

	sessionSvc.Logout()

	_, err = sessionSvc.Login(ctx, altMnemonic)
	require.NoError(t, err)

	// the freshly loaded wallet must not see the previous wallet's coins
	unspents, err = sessionSvc.SpendableUnspents(ctx)
	require.NoError(t, err)
	require.Empty(t, unspents)

	balance, err := sessionSvc.GetBalance(ctx)
	require.NoError(t, err)
	require.Zero(t, balance.Spendable)
}

func TestNextAddressesFreshWallet(t *testing.T) {
	sessionSvc := application.NewSessionService(
		&stubScanner{}, inmemory.NewRepoManager(), network,
	)

	_, err := sessionSvc.Login(ctx, testMnemonic)
	require.NoError(t, err)

	receiveAddr, err := sessionSvc.NextReceiveAddress()
	require.NoError(t, err)
	require.Equal(t, uint32(0), receiveAddr.Index)
	require.Equal(t, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", receiveAddr.Address)

	changeAddr, err := sessionSvc.NextChangeAddress()
	require.NoError(t, err)
	require.Equal(t, uint32(0), changeAddr.Index)
	require.NotEqual(t, receiveAddr.Address, changeAddr.Address)
}

func TestGetBlockchainServiceRegistry(t *testing.T) {
	_, err := application.GetBlockchainService("ethereum")
	require.EqualError(t, err, application.ErrBlockchainNotSupported.Error())

	svc := application.NewBitcoinService(
		newMockExplorer(), inmemory.NewRepoManager(), network,
	)
	application.RegisterBlockchainService(svc)

	registered, err := application.GetBlockchainService("bitcoin")
	require.NoError(t, err)
	require.Equal(t, "bitcoin", registered.Name())
	require.NotNil(t, registered.Session())
	require.NotNil(t, registered.Scanner())
	require.NotNil(t, registered.Sender())
}
