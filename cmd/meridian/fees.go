package main

import (
	"github.com/urfave/cli/v2"

	"github.com/meridian-wallet/meridiand/internal/config"
)

var fees = cli.Command{
	Name:   "fees",
	Usage:  "show the current recommended fee rates in sat/vB",
	Action: feesAction,
}

func feesAction(ctx *cli.Context) error {
	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return err
	}

	estimates, err := explorerSvc.GetFeeEstimates()
	if err != nil {
		return err
	}
	printJSON(estimates)

	return nil
}
