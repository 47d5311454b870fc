package application

import (
	"context"
	"sort"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
	"github.com/meridian-wallet/meridiand/internal/core/ports"
	"github.com/meridian-wallet/meridiand/pkg/explorer"
	"github.com/meridian-wallet/meridiand/pkg/mathutil"
	"github.com/meridian-wallet/meridiand/pkg/wallet"
)

// SendService turns a target address, amount and fee rate into a signed and
// broadcasted transaction: validation, coin selection, fee calculation,
// signing and submission.
type SendService interface {
	ValidateSend(
		ctx context.Context, address string, amount, feeRate uint64,
	) error
	// SelectCoins picks the unspents funding a send of the given amount. A
	// nil result with nil error means the spendable funds are insufficient.
	SelectCoins(
		ctx context.Context, amount, feeRate uint64, changeAddress string,
	) (*domain.CoinSelectionResult, error)
	// MaxSendableAmount is the whole spendable balance minus the fee of
	// spending it with a single output.
	MaxSendableAmount(ctx context.Context, feeRate uint64) (uint64, error)
	CreatePreview(
		ctx context.Context, address string, amount, feeRate uint64,
	) (*SendPreview, error)
	// Send validates, selects, signs and broadcasts. Selected unspents are
	// locked right before submission and unlocked again if the provider
	// rejects the transaction.
	Send(
		ctx context.Context, address string, amount, feeRate uint64,
	) (*domain.PreparedTransaction, error)
}

type sendService struct {
	sessionSvc  SessionService
	repoManager ports.RepoManager
	explorerSvc explorer.Service
	network     *chaincfg.Params
}

// NewSendService returns a SendService operating on the wallet of the given
// session.
func NewSendService(
	sessionSvc SessionService,
	repoManager ports.RepoManager,
	explorerSvc explorer.Service,
	network *chaincfg.Params,
) SendService {
	return &sendService{
		sessionSvc:  sessionSvc,
		repoManager: repoManager,
		explorerSvc: explorerSvc,
		network:     network,
	}
}

func (s *sendService) ValidateSend(
	ctx context.Context, address string, amount, feeRate uint64,
) error {
	w, err := s.sessionSvc.Wallet()
	if err != nil {
		return err
	}
	if !wallet.ValidateAddress(address, s.network) {
		return ErrInvalidTargetAddress
	}
	if amount < MinSendAmount {
		return ErrAmountBelowMinimum
	}
	if feeRate == 0 {
		return ErrNullFeeRate
	}

	spendable, err := s.repoManager.UnspentRepository().GetUnlockedBalance(
		ctx, w.Fingerprint(), nil,
	)
	if err != nil {
		return err
	}
	// the spendable funds must also cover at least the fee of the cheapest
	// possible shape, one input and one output
	minFee := wallet.EstimateFee(1, 1, feeRate)
	if amount+minFee > spendable {
		return ErrInsufficientFunds
	}
	return nil
}

func (s *sendService) SelectCoins(
	ctx context.Context, amount, feeRate uint64, changeAddress string,
) (*domain.CoinSelectionResult, error) {
	unspents, err := s.sessionSvc.SpendableUnspents(ctx)
	if err != nil {
		return nil, err
	}

	// keep only unspents worth more than the fee of spending them, sorted
	// by effective value, largest first
	candidates := make([]domain.Unspent, 0, len(unspents))
	for _, u := range unspents {
		if _, ok := wallet.InputEffectiveValue(u.Value, feeRate); ok {
			candidates = append(candidates, u)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Value > candidates[j].Value
	})

	selected := make([]domain.Unspent, 0, len(candidates))
	var totalInput uint64

	for _, u := range candidates {
		selected = append(selected, u)
		totalInput += u.Value

		feeNoChange := wallet.EstimateFee(len(selected), 1, feeRate)
		if totalInput < amount+feeNoChange {
			continue
		}

		result := &domain.CoinSelectionResult{
			SelectedUnspents: selected,
			TotalInputValue:  totalInput,
		}

		feeWithChange := wallet.EstimateFee(len(selected), 2, feeRate)
		if totalInput >= amount+feeWithChange &&
			totalInput-amount-feeWithChange >= wallet.DustLimit {
			result.Fee = feeWithChange
			result.ChangeAmount = totalInput - amount - feeWithChange
			result.ChangeAddress = changeAddress
			return result, nil
		}

		// change would be dust, fold the remainder into the fee
		result.Fee = totalInput - amount
		result.DustAddedToFee = result.Fee - feeNoChange
		return result, nil
	}

	return nil, nil
}

func (s *sendService) MaxSendableAmount(
	ctx context.Context, feeRate uint64,
) (uint64, error) {
	if feeRate == 0 {
		return 0, ErrNullFeeRate
	}

	unspents, err := s.sessionSvc.SpendableUnspents(ctx)
	if err != nil {
		return 0, err
	}

	numInputs := 0
	var total uint64
	for _, u := range unspents {
		if _, ok := wallet.InputEffectiveValue(u.Value, feeRate); ok {
			numInputs++
			total += u.Value
		}
	}
	if numInputs == 0 {
		return 0, nil
	}

	fee := wallet.EstimateFee(numInputs, 1, feeRate)
	if total <= fee {
		return 0, nil
	}
	return total - fee, nil
}

func (s *sendService) CreatePreview(
	ctx context.Context, address string, amount, feeRate uint64,
) (*SendPreview, error) {
	if err := s.ValidateSend(ctx, address, amount, feeRate); err != nil {
		return nil, err
	}

	changeAddress, err := s.sessionSvc.NextChangeAddress()
	if err != nil {
		return nil, err
	}

	selection, err := s.SelectCoins(ctx, amount, feeRate, changeAddress.Address)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, ErrInsufficientFunds
	}

	feePercent := mathutil.Percent(selection.Fee, amount)

	return &SendPreview{
		TargetAddress:  address,
		Amount:         amount,
		AmountBTC:      mathutil.SatsToBTC(amount),
		Fee:            selection.Fee,
		FeeBTC:         mathutil.SatsToBTC(selection.Fee),
		FeePercent:     feePercent,
		FeeWarning:     IsFeeWarning(selection.Fee, amount),
		Total:          amount + selection.Fee,
		NumInputs:      len(selection.SelectedUnspents),
		ChangeAmount:   selection.ChangeAmount,
		DustAddedToFee: selection.DustAddedToFee,
	}, nil
}

func (s *sendService) Send(
	ctx context.Context, address string, amount, feeRate uint64,
) (*domain.PreparedTransaction, error) {
	if err := s.ValidateSend(ctx, address, amount, feeRate); err != nil {
		return nil, err
	}

	prepared := &domain.PreparedTransaction{
		ID:            uuid.New(),
		TargetAddress: address,
		TargetAmount:  amount,
		FeeRate:       feeRate,
		Status:        domain.TxStatusValidated,
	}

	changeAddress, err := s.sessionSvc.NextChangeAddress()
	if err != nil {
		return nil, err
	}

	selection, err := s.SelectCoins(ctx, amount, feeRate, changeAddress.Address)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return nil, ErrInsufficientFunds
	}
	prepared.Selection = *selection
	numOutputs := 1
	if selection.HasChange() {
		numOutputs = 2
	}
	prepared.EstimatedSize = wallet.EstimateTxSize(
		len(selection.SelectedUnspents), numOutputs,
	)
	prepared.Status = domain.TxStatusCoinSelected

	w, err := s.sessionSvc.Wallet()
	if err != nil {
		return nil, err
	}

	inputs := make([]wallet.TxInput, 0, len(selection.SelectedUnspents))
	for _, u := range selection.SelectedUnspents {
		inputs = append(inputs, wallet.TxInput{
			TxID:           u.TxID,
			VOut:           u.VOut,
			Value:          u.Value,
			ScriptPubKey:   u.ScriptPubKey,
			DerivationPath: u.DerivationPath,
		})
	}

	txHex, err := w.CreateAndSignTransaction(wallet.CreateTxOpts{
		Inputs:        inputs,
		TargetAddress: address,
		TargetAmount:  amount,
		ChangeAddress: selection.ChangeAddress,
		ChangeAmount:  selection.ChangeAmount,
		Network:       s.network,
	})
	if err != nil {
		return nil, err
	}
	prepared.TxHex = txHex
	prepared.Status = domain.TxStatusSigned

	// optimistic lock, released if the provider rejects the tx
	if err := s.repoManager.UnspentRepository().LockUnspents(
		ctx, selection.Keys(), prepared.ID,
	); err != nil {
		return nil, err
	}
	prepared.Status = domain.TxStatusBroadcast

	txid, err := s.explorerSvc.BroadcastTransaction(txHex)
	if err != nil {
		prepared.Status = domain.TxStatusFailed
		if unlockErr := s.repoManager.UnspentRepository().UnlockUnspents(
			ctx, selection.Keys(),
		); unlockErr != nil {
			log.WithError(unlockErr).Warn("failed to unlock unspents after rejected broadcast")
		}
		return nil, err
	}
	prepared.TxID = txid
	prepared.Status = domain.TxStatusPending

	log.WithFields(log.Fields{
		"txid":   txid,
		"amount": amount,
		"fee":    selection.Fee,
	}).Info("transaction broadcasted")

	return prepared, nil
}

// IsFeeWarning reports whether the fee crosses the warning threshold for
// the given amount.
func IsFeeWarning(fee, amount uint64) bool {
	return mathutil.Percent(fee, amount).
		GreaterThan(mathutil.Sats(FeeWarningPercent))
}
