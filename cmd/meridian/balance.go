package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "scan the chain and show the wallet balance",
	Action: balanceAction,
	Flags: []cli.Flag{
		&mnemonicFlag,
		&cli.BoolFlag{
			Name:  "stale",
			Usage: "show the last persisted snapshot without rescanning",
		},
	},
}

func balanceAction(ctx *cli.Context) error {
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

	if !ctx.Bool("stale") {
		if _, err := sessionSvc.RefreshBalance(context.Background()); err != nil {
			return err
		}
	}

	bal, err := sessionSvc.GetBalance(context.Background())
	if err != nil {
		return err
	}

	resp := map[string]interface{}{
		"total_balance":     bal.Total,
		"spendable_balance": bal.Spendable,
	}
	if lastScan := sessionSvc.LastScan(); lastScan != nil {
		resp["used_addresses"] = len(lastScan.Addresses)
		resp["scanned_at"] = lastScan.ScannedAt
		if lastScan.IsDegraded() {
			resp["degraded_lookups"] = lastScan.DegradedLookups
		}
	}
	printJSON(resp)

	return nil
}
