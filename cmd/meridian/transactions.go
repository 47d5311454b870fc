package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
)

var transactions = cli.Command{
	Name:   "transactions",
	Usage:  "list the recent transaction history of the wallet",
	Action: transactionsAction,
	Flags:  []cli.Flag{&mnemonicFlag},
}

func transactionsAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	sessionSvc, err := login(ctx, svc)
	if err != nil {
		return err
	}
	defer sessionSvc.Logout()

	if _, err := sessionSvc.RefreshBalance(context.Background()); err != nil {
		return err
	}

	lastScan := sessionSvc.LastScan()
	if lastScan == nil {
		printJSON([]interface{}{})
		return nil
	}

	txs := make([]map[string]interface{}, 0, len(lastScan.Transactions))
	for _, tx := range lastScan.Transactions {
		txs = append(txs, map[string]interface{}{
			"txid":      tx.TxID,
			"time":      tx.Time,
			"confirmed": tx.Confirmed(),
			"fee":       tx.Fee,
			"inputs":    txEntries(tx.Inputs),
			"outputs":   txEntries(tx.Outputs),
			"result":    tx.Result,
		})
	}
	printJSON(txs)

	return nil
}

func txEntries(entries []domain.TxEntry) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		entry := map[string]interface{}{"value": e.Value}
		if e.Address != "" {
			entry["address"] = e.Address
		}
		list = append(list, entry)
	}
	return list
}
