package blockchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meridian-wallet/meridiand/pkg/explorer"
)

func (b *blockchain) GetMultiAddressInfo(
	addresses []string, txLimit, offset int,
) (*explorer.MultiAddressInfo, error) {
	if len(addresses) <= 0 {
		return nil, errors.New("address list must not be empty")
	}

	url := fmt.Sprintf(
		"%s/multiaddr?active=%s",
		b.apiURL,
		strings.Join(addresses, "|"),
	)
	if txLimit > 0 {
		url = fmt.Sprintf("%s&n=%d", url, txLimit)
	}
	if offset > 0 {
		url = fmt.Sprintf("%s&offset=%d", url, offset)
	}

	status, resp, err := b.get(url)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving multi address info: %s", err)
	}
	if !isOK(status) {
		return nil, errors.New(resp)
	}

	info := &explorer.MultiAddressInfo{}
	if err := json.Unmarshal([]byte(resp), info); err != nil {
		return nil, fmt.Errorf("error on retrieving multi address info: %s", err)
	}

	return info, nil
}

func (b *blockchain) GetBalance(address string) (*explorer.AddressInfo, error) {
	url := fmt.Sprintf("%s/balance?active=%s", b.apiURL, address)

	status, resp, err := b.get(url)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving balance: %s", err)
	}
	if !isOK(status) {
		return nil, errors.New(resp)
	}

	balances := map[string]struct {
		FinalBalance uint64 `json:"final_balance"`
		TxCount      int    `json:"n_tx"`
	}{}
	if err := json.Unmarshal([]byte(resp), &balances); err != nil {
		return nil, fmt.Errorf("error on retrieving balance: %s", err)
	}

	entry, ok := balances[address]
	if !ok {
		return nil, fmt.Errorf("address %s not found in response", address)
	}

	return &explorer.AddressInfo{
		Address:      address,
		FinalBalance: entry.FinalBalance,
		TxCount:      entry.TxCount,
	}, nil
}
