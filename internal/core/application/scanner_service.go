package application

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
	"github.com/meridian-wallet/meridiand/pkg/explorer"
	"github.com/meridian-wallet/meridiand/pkg/wallet"
)

// ScannerService discovers the addresses, balance, transaction history and
// unspent outputs of a wallet by walking both branches of its BIP84 account
// with the standard gap-limit rule.
type ScannerService interface {
	ScanWallet(
		ctx context.Context, w *wallet.Wallet,
	) (*domain.WalletScanResult, []domain.Unspent, error)
}

type scannerService struct {
	explorerSvc explorer.Service
	network     *chaincfg.Params
	limiter     *rate.Limiter
}

// NewScannerService returns a ScannerService backed by the given chain index.
func NewScannerService(
	explorerSvc explorer.Service, network *chaincfg.Params,
) ScannerService {
	return &scannerService{
		explorerSvc: explorerSvc,
		network:     network,
		limiter:     rate.NewLimiter(rate.Limit(scanLookupsPerSecond), 1),
	}
}

type branchOutcome struct {
	used             []domain.AddressBalance
	highestUsedIndex int
	degradedLookups  int
}

func (s *scannerService) ScanWallet(
	ctx context.Context, w *wallet.Wallet,
) (*domain.WalletScanResult, []domain.Unspent, error) {
	startTime := time.Now()

	outcomes := make([]*branchOutcome, 2)
	eg, egCtx := errgroup.WithContext(ctx)
	for _, branch := range []wallet.Branch{wallet.BranchReceive, wallet.BranchChange} {
		branch := branch
		eg.Go(func() error {
			outcome, err := s.scanBranch(egCtx, w, branch)
			if err != nil {
				return err
			}
			outcomes[branch] = outcome
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	receive, change := outcomes[wallet.BranchReceive], outcomes[wallet.BranchChange]

	result := &domain.WalletScanResult{
		Fingerprint:             w.Fingerprint(),
		Network:                 s.network.Name,
		HighestUsedReceiveIndex: receive.highestUsedIndex,
		HighestUsedChangeIndex:  change.highestUsedIndex,
		Addresses:               append(receive.used, change.used...),
		DegradedLookups:         receive.degradedLookups + change.degradedLookups,
		ScannedAt:               time.Now().UTC(),
	}

	// a wallet with no used address on either branch has nothing on chain
	if len(result.Addresses) == 0 {
		log.WithField("fingerprint", result.Fingerprint).
			Debug("scan found no used addresses")
		return result, nil, nil
	}

	for _, a := range result.Addresses {
		result.TotalBalance += a.Balance
	}

	usedAddresses := make([]string, 0, len(result.Addresses))
	pathsByAddress := make(map[string]string, len(result.Addresses))
	addressByScript := make(map[string]string, len(result.Addresses))
	for _, a := range result.Addresses {
		usedAddresses = append(usedAddresses, a.Address)
		pathsByAddress[a.Address] = a.DerivationPath
		// the unspent endpoint does not echo the address back, only the
		// output script
		script, err := wallet.OutputScript(a.Address, s.network)
		if err != nil {
			return nil, nil, err
		}
		addressByScript[string(script)] = a.Address
	}

	var txs []domain.WalletTransaction
	var unspents []domain.Unspent

	eg, _ = errgroup.WithContext(ctx)
	eg.Go(func() error {
		info, err := s.explorerSvc.GetMultiAddressInfo(
			usedAddresses, TxHistoryPageSize, 0,
		)
		if err != nil {
			return err
		}
		txs = make([]domain.WalletTransaction, 0, len(info.Txs))
		for _, tx := range info.Txs {
			inputs := make([]domain.TxEntry, 0, len(tx.Inputs))
			for _, in := range tx.Inputs {
				inputs = append(inputs, domain.TxEntry{
					Address: in.PrevOut.Address,
					Value:   in.PrevOut.Value,
				})
			}
			outputs := make([]domain.TxEntry, 0, len(tx.Outputs))
			for _, out := range tx.Outputs {
				outputs = append(outputs, domain.TxEntry{
					Address: out.Address,
					Value:   out.Value,
				})
			}
			txs = append(txs, domain.WalletTransaction{
				TxID:        tx.Hash,
				Time:        tx.Time,
				BlockHeight: tx.BlockHeight,
				Fee:         tx.Fee,
				Inputs:      inputs,
				Outputs:     outputs,
				Result:      tx.Result,
			})
		}
		return nil
	})
	eg.Go(func() error {
		utxos, err := s.explorerSvc.GetUnspentsForAddresses(usedAddresses)
		if err != nil {
			return err
		}
		unspents = make([]domain.Unspent, 0, len(utxos))
		for _, utxo := range utxos {
			addr := addressByScript[string(utxo.Script())]
			unspents = append(unspents, domain.NewUnspentFromUtxo(
				utxo, addr, pathsByAddress[addr],
			))
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	result.Transactions = txs

	log.WithFields(log.Fields{
		"fingerprint":      result.Fingerprint,
		"used_addresses":   len(result.Addresses),
		"balance":          result.TotalBalance,
		"degraded_lookups": result.DegradedLookups,
		"elapsed":          time.Since(startTime).Round(time.Millisecond).String(),
	}).Info("wallet scan completed")

	return result, unspents, nil
}

// scanBranch walks one branch in batches, stopping as soon as GapLimit
// consecutive unused addresses have been observed. Within a batch addresses
// are processed in index order so that the stop point is deterministic.
func (s *scannerService) scanBranch(
	ctx context.Context, w *wallet.Wallet, branch wallet.Branch,
) (*branchOutcome, error) {
	outcome := &branchOutcome{
		used:             make([]domain.AddressBalance, 0),
		highestUsedIndex: -1,
	}
	consecutiveUnused := 0

	for batchStart := uint32(0); ; batchStart += BatchSize {
		addresses, err := w.DeriveAddresses(wallet.DeriveAddressesOpts{
			StartIndex: batchStart,
			Count:      BatchSize,
			Branch:     branch,
			Network:    s.network,
		})
		if err != nil {
			return nil, err
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		infos, degraded, err := s.lookupBatch(ctx, addresses)
		if err != nil {
			return nil, err
		}
		outcome.degradedLookups += degraded

		for i, info := range infos {
			if info.TxCount > 0 {
				index := batchStart + uint32(i)
				outcome.highestUsedIndex = int(index)
				outcome.used = append(outcome.used, domain.AddressBalance{
					Address:        addresses[i].Address,
					DerivationPath: addresses[i].DerivationPath,
					Branch:         uint32(branch),
					Index:          index,
					Balance:        info.FinalBalance,
					TxCount:        info.TxCount,
				})
				consecutiveUnused = 0
				continue
			}

			consecutiveUnused++
			if consecutiveUnused >= GapLimit {
				return outcome, nil
			}
		}
	}
}

// lookupBatch fetches the balance summaries for a batch of addresses with a
// single multi-address call, falling back to per-address lookups if the
// batched one fails. A per-address lookup that fails too degrades to a zero
// entry instead of aborting the scan.
func (s *scannerService) lookupBatch(
	ctx context.Context, addresses []wallet.DerivedAddress,
) ([]explorer.AddressInfo, int, error) {
	list := make([]string, 0, len(addresses))
	for _, a := range addresses {
		list = append(list, a.Address)
	}

	infos := make([]explorer.AddressInfo, len(addresses))

	multiInfo, err := s.explorerSvc.GetMultiAddressInfo(list, 0, 0)
	if err == nil {
		byAddress := make(map[string]explorer.AddressInfo, len(multiInfo.Addresses))
		for _, info := range multiInfo.Addresses {
			byAddress[info.Address] = info
		}
		for i, a := range addresses {
			infos[i] = byAddress[a.Address]
			infos[i].Address = a.Address
		}
		return infos, 0, nil
	}

	log.WithError(err).Warn(
		"batched address lookup failed, falling back to per-address lookups",
	)

	degraded := 0
	for i, a := range addresses {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		info, err := s.explorerSvc.GetBalance(a.Address)
		if err != nil {
			log.WithError(err).WithField("address", a.Address).
				Warn("address lookup degraded to zero entry")
			degraded++
			infos[i] = explorer.AddressInfo{Address: a.Address}
			continue
		}
		infos[i] = *info
		infos[i].Address = a.Address
	}

	return infos, degraded, nil
}
