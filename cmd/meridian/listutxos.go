package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listutxos = cli.Command{
	Name:   "listutxos",
	Usage:  "list the spendable utxos of the wallet",
	Action: listUtxosAction,
	Flags:  []cli.Flag{&mnemonicFlag},
}

func listUtxosAction(ctx *cli.Context) error {
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

	unspents, err := sessionSvc.SpendableUnspents(context.Background())
	if err != nil {
		return err
	}

	utxos := make([]map[string]interface{}, 0, len(unspents))
	for _, u := range unspents {
		utxos = append(utxos, map[string]interface{}{
			"txid":          u.TxID,
			"vout":          u.VOut,
			"value":         u.Value,
			"address":       u.Address,
			"confirmations": u.Confirmations,
		})
	}
	printJSON(utxos)

	return nil
}
