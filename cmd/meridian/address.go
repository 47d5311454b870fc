package main

import (
	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "show the next unused receive address of the wallet",
	Action: addressAction,
	Flags:  []cli.Flag{&mnemonicFlag},
}

func addressAction(ctx *cli.Context) error {
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

	addr, err := sessionSvc.NextReceiveAddress()
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"address":         addr.Address,
		"derivation_path": addr.DerivationPath,
		"index":           addr.Index,
	})

	return nil
}
