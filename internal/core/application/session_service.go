package application

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
	"github.com/meridian-wallet/meridiand/internal/core/ports"
	"github.com/meridian-wallet/meridiand/pkg/wallet"
)

// SessionService holds the state of the currently loaded wallet. The
// mnemonic lives only in memory for the lifetime of the session; everything
// persisted is keyed by the one-way wallet fingerprint.
type SessionService interface {
	// Login loads a wallet from its mnemonic and returns the last persisted
	// scan snapshot, if any, to serve as stale data until a fresh scan lands.
	Login(ctx context.Context, mnemonic string) (*domain.WalletScanResult, error)
	Logout()
	IsLoggedIn() bool
	IsScanning() bool

	// RefreshBalance runs a full scan and commits its outcome to the session
	// and to the snapshot store. The commit is discarded if the session
	// changed while the scan was running.
	RefreshBalance(ctx context.Context) (*Balance, error)
	GetBalance(ctx context.Context) (*Balance, error)

	Wallet() (*wallet.Wallet, error)
	LastScan() *domain.WalletScanResult
	SpendableUnspents(ctx context.Context) ([]domain.Unspent, error)
	NextReceiveAddress() (*wallet.DerivedAddress, error)
	NextChangeAddress() (*wallet.DerivedAddress, error)
}

type sessionService struct {
	scannerSvc  ScannerService
	repoManager ports.RepoManager
	network     *chaincfg.Params

	mtx        sync.RWMutex
	wallet     *wallet.Wallet
	generation uuid.UUID
	scanning   bool
	lastScan   *domain.WalletScanResult
}

// NewSessionService returns a SessionService with no wallet loaded.
func NewSessionService(
	scannerSvc ScannerService,
	repoManager ports.RepoManager,
	network *chaincfg.Params,
) SessionService {
	return &sessionService{
		scannerSvc:  scannerSvc,
		repoManager: repoManager,
		network:     network,
	}
}

func (s *sessionService) Login(
	ctx context.Context, mnemonic string,
) (*domain.WalletScanResult, error) {
	if !wallet.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	if s.wallet != nil {
		s.mtx.Unlock()
		return nil, ErrAlreadyLoggedIn
	}
	s.wallet = w
	s.generation = uuid.New()
	s.mtx.Unlock()

	log.WithField("fingerprint", w.Fingerprint()).Info("wallet loaded")

	snapshot, err := s.repoManager.SnapshotRepository().GetSnapshot(
		ctx, w.Fingerprint(),
	)
	if err != nil {
		if err == domain.ErrSnapshotNotFound {
			return nil, nil
		}
		return nil, err
	}

	s.mtx.Lock()
	s.lastScan = snapshot
	s.mtx.Unlock()

	return snapshot, nil
}

func (s *sessionService) Logout() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	// bump the generation so an in-flight scan cannot commit
	s.wallet = nil
	s.generation = uuid.New()
	s.lastScan = nil

	log.Info("wallet unloaded")
}

func (s *sessionService) IsLoggedIn() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.wallet != nil
}

func (s *sessionService) IsScanning() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.scanning
}

func (s *sessionService) RefreshBalance(ctx context.Context) (*Balance, error) {
	s.mtx.Lock()
	if s.wallet == nil {
		s.mtx.Unlock()
		return nil, ErrNotLoggedIn
	}
	if s.scanning {
		s.mtx.Unlock()
		return nil, ErrScanInProgress
	}
	s.scanning = true
	w := s.wallet
	generation := s.generation
	s.mtx.Unlock()

	defer func() {
		s.mtx.Lock()
		s.scanning = false
		s.mtx.Unlock()
	}()

	result, unspents, err := s.scannerSvc.ScanWallet(ctx, w)
	if err != nil {
		return nil, err
	}

	for i := range unspents {
		unspents[i].Fingerprint = w.Fingerprint()
	}

	// the stores are written in the same critical section the generation
	// check runs in, so a logout interleaving here cannot land stale state
	s.mtx.Lock()
	if s.generation != generation {
		s.mtx.Unlock()
		return nil, ErrStaleScan
	}
	if err := s.repoManager.UnspentRepository().ReplaceUnspents(
		ctx, w.Fingerprint(), unspents,
	); err != nil {
		s.mtx.Unlock()
		return nil, err
	}
	if err := s.repoManager.SnapshotRepository().AddOrUpdateSnapshot(
		ctx, *result,
	); err != nil {
		log.WithError(err).Warn("failed to persist scan snapshot")
	}
	s.lastScan = result
	s.mtx.Unlock()

	return s.GetBalance(ctx)
}

func (s *sessionService) GetBalance(ctx context.Context) (*Balance, error) {
	s.mtx.RLock()
	if s.wallet == nil {
		s.mtx.RUnlock()
		return nil, ErrNotLoggedIn
	}
	w := s.wallet
	lastScan := s.lastScan
	s.mtx.RUnlock()

	var total uint64
	if lastScan != nil {
		total = lastScan.TotalBalance
	}

	spendable, err := s.repoManager.UnspentRepository().GetUnlockedBalance(
		ctx, w.Fingerprint(), nil,
	)
	if err != nil {
		return nil, err
	}

	return &Balance{Total: total, Spendable: spendable}, nil
}

func (s *sessionService) Wallet() (*wallet.Wallet, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.wallet == nil {
		return nil, ErrNotLoggedIn
	}
	return s.wallet, nil
}

func (s *sessionService) LastScan() *domain.WalletScanResult {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.lastScan
}

func (s *sessionService) SpendableUnspents(
	ctx context.Context,
) ([]domain.Unspent, error) {
	w, err := s.Wallet()
	if err != nil {
		return nil, err
	}
	return s.repoManager.UnspentRepository().GetAvailableUnspents(
		ctx, w.Fingerprint(),
	)
}

// NextReceiveAddress returns the address right after the highest used index
// of the external branch, index 0 for a fresh wallet.
func (s *sessionService) NextReceiveAddress() (*wallet.DerivedAddress, error) {
	return s.nextAddress(wallet.BranchReceive)
}

// NextChangeAddress returns the address right after the highest used index
// of the internal branch, index 0 for a fresh wallet.
func (s *sessionService) NextChangeAddress() (*wallet.DerivedAddress, error) {
	return s.nextAddress(wallet.BranchChange)
}

func (s *sessionService) nextAddress(
	branch wallet.Branch,
) (*wallet.DerivedAddress, error) {
	s.mtx.RLock()
	w := s.wallet
	lastScan := s.lastScan
	s.mtx.RUnlock()

	if w == nil {
		return nil, ErrNotLoggedIn
	}

	nextIndex := uint32(0)
	if lastScan != nil {
		highest := lastScan.HighestUsedReceiveIndex
		if branch == wallet.BranchChange {
			highest = lastScan.HighestUsedChangeIndex
		}
		if highest >= 0 {
			nextIndex = uint32(highest + 1)
		}
	}

	return w.DeriveAddressAtIndex(wallet.DeriveAddressOpts{
		Index:   nextIndex,
		Branch:  branch,
		Network: s.network,
	})
}
