package application

import (
	"sync"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/meridian-wallet/meridiand/internal/core/ports"
	"github.com/meridian-wallet/meridiand/pkg/explorer"
)

// BlockchainService groups the capabilities the wallet needs from a chain:
// scanning, session state and sending. Today bitcoin is the only chain
// implemented, the registry keeps the seam explicit without speculating on
// others.
type BlockchainService interface {
	Name() string
	Session() SessionService
	Scanner() ScannerService
	Sender() SendService
}

var (
	servicesMtx sync.RWMutex
	services    = map[string]BlockchainService{}
)

// RegisterBlockchainService makes a chain implementation available under its
// name. Registering the same name twice overwrites the previous one.
func RegisterBlockchainService(svc BlockchainService) {
	servicesMtx.Lock()
	defer servicesMtx.Unlock()
	services[svc.Name()] = svc
}

// GetBlockchainService returns the chain implementation registered under the
// given name.
func GetBlockchainService(name string) (BlockchainService, error) {
	servicesMtx.RLock()
	defer servicesMtx.RUnlock()

	svc, ok := services[name]
	if !ok {
		return nil, ErrBlockchainNotSupported
	}
	return svc, nil
}

type bitcoinService struct {
	sessionSvc SessionService
	scannerSvc ScannerService
	sendSvc    SendService
}

// NewBitcoinService wires the scanner, session and send services for the
// bitcoin chain on the given network.
func NewBitcoinService(
	explorerSvc explorer.Service,
	repoManager ports.RepoManager,
	network *chaincfg.Params,
) BlockchainService {
	scannerSvc := NewScannerService(explorerSvc, network)
	sessionSvc := NewSessionService(scannerSvc, repoManager, network)
	sendSvc := NewSendService(sessionSvc, repoManager, explorerSvc, network)

	return &bitcoinService{
		sessionSvc: sessionSvc,
		scannerSvc: scannerSvc,
		sendSvc:    sendSvc,
	}
}

func (s *bitcoinService) Name() string            { return "bitcoin" }
func (s *bitcoinService) Session() SessionService { return s.sessionSvc }
func (s *bitcoinService) Scanner() ScannerService { return s.scannerSvc }
func (s *bitcoinService) Sender() SendService     { return s.sendSvc }
