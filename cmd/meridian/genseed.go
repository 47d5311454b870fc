package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/meridian-wallet/meridiand/pkg/wallet"
)

var genseed = cli.Command{
	Name:   "genseed",
	Usage:  "generate a new mnemonic seed",
	Action: genSeedAction,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "entropy",
			Usage: "entropy size in bits, either 128 or 256",
			Value: 128,
		},
	},
}

func genSeedAction(ctx *cli.Context) error {
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
		EntropySize: ctx.Int("entropy"),
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(mnemonic)

	return nil
}
