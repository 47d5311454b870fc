package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/meridian-wallet/meridiand/internal/config"
	"github.com/meridian-wallet/meridiand/internal/core/application"
	"github.com/meridian-wallet/meridiand/internal/core/ports"
	dbbadger "github.com/meridian-wallet/meridiand/internal/infrastructure/storage/db/badger"
	"github.com/meridian-wallet/meridiand/internal/infrastructure/storage/db/inmemory"
	"github.com/meridian-wallet/meridiand/pkg/stats"
)

var mnemonicFlag = cli.StringFlag{
	Name:  "mnemonic",
	Usage: "the BIP39 mnemonic of the wallet, prompted on stdin if omitted",
}

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "meridian CLI"
	app.Usage = "command line interface for the meridian wallet"
	app.Commands = append(
		app.Commands,
		&genseed,
		&address,
		&balance,
		&listutxos,
		&transactions,
		&fees,
		&send,
	)

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(
			context.Background(), interval, config.GetDatadir(),
		)
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// getWalletService builds the bitcoin wallet service stack from the current
// configuration. The returned cleanup closes the storage.
func getWalletService() (application.BlockchainService, func(), error) {
	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return nil, nil, err
	}

	var repoManager ports.RepoManager
	if config.UseInMemoryDb() {
		repoManager = inmemory.NewRepoManager()
	} else {
		repoManager, err = dbbadger.NewRepoManager(config.GetDbDir(), nil)
		if err != nil {
			return nil, nil, err
		}
	}

	svc := application.NewBitcoinService(
		explorerSvc, repoManager, config.GetNetwork(),
	)
	application.RegisterBlockchainService(svc)

	return svc, repoManager.Close, nil
}

// readMnemonic returns the mnemonic from the --mnemonic flag or prompts for
// it on stdin. It is never written anywhere.
func readMnemonic(ctx *cli.Context) (string, error) {
	if mnemonic := ctx.String("mnemonic"); mnemonic != "" {
		return mnemonic, nil
	}

	fmt.Print("mnemonic: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func login(
	ctx *cli.Context, svc application.BlockchainService,
) (application.SessionService, error) {
	mnemonic, err := readMnemonic(ctx)
	if err != nil {
		return nil, err
	}

	sessionSvc := svc.Session()
	if _, err := sessionSvc.Login(context.Background(), mnemonic); err != nil {
		return nil, err
	}
	return sessionSvc, nil
}

func printJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}
	fmt.Println(string(jsonStr))
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[meridian] %v\n", err)
	os.Exit(1)
}
