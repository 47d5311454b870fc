package application_test

import (
	"errors"
	"sync"

	"github.com/meridian-wallet/meridiand/pkg/explorer"
	"github.com/meridian-wallet/meridiand/pkg/wallet"
)

// mockExplorer is a stateful fake of the chain index. Discovery lookups are
// told apart from history ones by the txLimit argument, mirroring how the
// scanner uses the real service.
type mockExplorer struct {
	mtx sync.Mutex

	balances map[string]explorer.AddressInfo
	utxos    map[string][]explorer.Utxo
	txs      []explorer.Tx

	failMultiAddr  bool
	failBalanceFor map[string]bool
	broadcastErr   error

	queriedAddresses int
	historyCalls     int
	unspentCalls     int
	broadcastedTxs   []string
}

func newMockExplorer() *mockExplorer {
	return &mockExplorer{
		balances:       map[string]explorer.AddressInfo{},
		utxos:          map[string][]explorer.Utxo{},
		failBalanceFor: map[string]bool{},
	}
}

func (m *mockExplorer) markUsed(address string, balance uint64, txCount int) {
	m.balances[address] = explorer.AddressInfo{
		Address:      address,
		FinalBalance: balance,
		TxCount:      txCount,
	}
}

func (m *mockExplorer) addUtxo(address string, utxo explorer.Utxo) {
	m.utxos[address] = append(m.utxos[address], utxo)
}

func (m *mockExplorer) GetMultiAddressInfo(
	addresses []string, txLimit, offset int,
) (*explorer.MultiAddressInfo, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if txLimit > 0 {
		m.historyCalls++
		return &explorer.MultiAddressInfo{Txs: m.txs}, nil
	}

	if m.failMultiAddr {
		return nil, errors.New("multiaddr endpoint unavailable")
	}

	m.queriedAddresses += len(addresses)

	infos := make([]explorer.AddressInfo, 0, len(addresses))
	for _, addr := range addresses {
		info, ok := m.balances[addr]
		if !ok {
			info = explorer.AddressInfo{Address: addr}
		}
		infos = append(infos, info)
	}
	return &explorer.MultiAddressInfo{Addresses: infos}, nil
}

func (m *mockExplorer) GetBalance(address string) (*explorer.AddressInfo, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.queriedAddresses++

	if m.failBalanceFor[address] {
		return nil, errors.New("balance endpoint unavailable")
	}

	info, ok := m.balances[address]
	if !ok {
		info = explorer.AddressInfo{Address: address}
	}
	return &info, nil
}

func (m *mockExplorer) GetUnspents(address string) ([]explorer.Utxo, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.utxos[address], nil
}

func (m *mockExplorer) GetUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.unspentCalls++

	unspents := make([]explorer.Utxo, 0)
	for _, addr := range addresses {
		unspents = append(unspents, m.utxos[addr]...)
	}
	return unspents, nil
}

func (m *mockExplorer) GetFeeEstimates() (*explorer.FeeEstimates, error) {
	return &explorer.FeeEstimates{
		FastestFee:  30,
		HalfHourFee: 20,
		HourFee:     10,
		EconomyFee:  5,
		MinimumFee:  1,
	}, nil
}

func (m *mockExplorer) BroadcastTransaction(txHex string) (string, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.broadcastErr != nil {
		return "", m.broadcastErr
	}
	m.broadcastedTxs = append(m.broadcastedTxs, txHex)
	return wallet.TxHashFromHex(txHex)
}
