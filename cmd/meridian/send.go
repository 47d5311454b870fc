package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/meridian-wallet/meridiand/internal/config"
)

var send = cli.Command{
	Name:   "send",
	Usage:  "send funds to an address",
	Action: sendAction,
	Flags: []cli.Flag{
		&mnemonicFlag,
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the target address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount to send in satoshis",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "feerate",
			Usage: "the fee rate in sat/vB, defaults to the half hour tier",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "show the preview without broadcasting",
		},
	},
}

func sendAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	feeRate := ctx.Uint64("feerate")
	if feeRate == 0 {
		explorerSvc, err := config.GetExplorer()
		if err != nil {
			return err
		}
		estimates, err := explorerSvc.GetFeeEstimates()
		if err != nil {
			return err
		}
		feeRate = estimates.HalfHourFee
	}

	sessionSvc, err := login(ctx, svc)
	if err != nil {
		return err
	}
	defer sessionSvc.Logout()

	if _, err := sessionSvc.RefreshBalance(context.Background()); err != nil {
		return err
	}

	sendSvc := svc.Sender()
	to, amount := ctx.String("to"), ctx.Uint64("amount")

	preview, err := sendSvc.CreatePreview(context.Background(), to, amount, feeRate)
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"target_address":    preview.TargetAddress,
		"amount":            preview.Amount,
		"amount_btc":        preview.AmountBTC.String(),
		"fee":               preview.Fee,
		"fee_btc":           preview.FeeBTC.String(),
		"fee_percent":       preview.FeePercent.String(),
		"total":             preview.Total,
		"num_inputs":        preview.NumInputs,
		"change_amount":     preview.ChangeAmount,
		"dust_added_to_fee": preview.DustAddedToFee,
	})

	if preview.FeeWarning {
		fmt.Printf(
			"warning: the fee is %s%% of the amount being sent\n",
			preview.FeePercent.String(),
		)
	}

	if ctx.Bool("dry-run") {
		return nil
	}

	prepared, err := sendSvc.Send(context.Background(), to, amount, feeRate)
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"txid": prepared.TxID,
		"fee":  prepared.Selection.Fee,
	})

	return nil
}
