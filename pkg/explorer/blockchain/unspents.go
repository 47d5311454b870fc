package blockchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-wallet/meridiand/pkg/explorer"
)

type unspentOutput struct {
	TxHashBigEndian string `json:"tx_hash_big_endian"`
	TxOutputN       uint32 `json:"tx_output_n"`
	Value           uint64 `json:"value"`
	Script          string `json:"script"`
	Confirmations   uint64 `json:"confirmations"`
}

type unspentList struct {
	UnspentOutputs []unspentOutput `json:"unspent_outputs"`
}

func (b *blockchain) GetUnspents(address string) ([]explorer.Utxo, error) {
	url := fmt.Sprintf("%s/unspent?active=%s", b.apiURL, address)

	status, resp, err := b.get(url)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}
	// the provider answers addresses without utxos with an error status
	if status == http.StatusInternalServerError &&
		strings.Contains(resp, "No free outputs to spend") {
		return []explorer.Utxo{}, nil
	}
	if !isOK(status) {
		return nil, errors.New(resp)
	}

	var list unspentList
	if err := json.Unmarshal([]byte(resp), &list); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %s", err)
	}

	unspents := make([]explorer.Utxo, 0, len(list.UnspentOutputs))
	for _, out := range list.UnspentOutputs {
		unspents = append(unspents, explorer.NewWitnessUtxo(
			out.TxHashBigEndian,
			out.TxOutputN,
			out.Value,
			out.Script,
			out.Confirmations,
		))
	}

	return unspents, nil
}

func (b *blockchain) GetUnspentsForAddresses(
	addresses []string,
) ([]explorer.Utxo, error) {
	unspents := make([]explorer.Utxo, 0)
	mtx := &sync.Mutex{}

	eg := &errgroup.Group{}
	for i := range addresses {
		addr := addresses[i]
		eg.Go(func() error {
			unspentsForAddress, err := b.GetUnspents(addr)
			if err != nil {
				return err
			}
			mtx.Lock()
			defer mtx.Unlock()
			unspents = append(unspents, unspentsForAddress...)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return unspents, nil
}
