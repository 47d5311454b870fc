package inmemory

import (
	"context"
	"sync"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
)

// SnapshotRepositoryImpl represents an in memory storage
type SnapshotRepositoryImpl struct {
	snapshots map[string]domain.WalletScanResult
	lock      *sync.RWMutex
}

// NewSnapshotRepositoryImpl returns a new empty SnapshotRepositoryImpl
func NewSnapshotRepositoryImpl() *SnapshotRepositoryImpl {
	return &SnapshotRepositoryImpl{
		snapshots: map[string]domain.WalletScanResult{},
		lock:      &sync.RWMutex{},
	}
}

func (r *SnapshotRepositoryImpl) AddOrUpdateSnapshot(
	_ context.Context, snapshot domain.WalletScanResult,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.snapshots[snapshot.Fingerprint] = snapshot
	return nil
}

func (r *SnapshotRepositoryImpl) GetSnapshot(
	_ context.Context, fingerprint string,
) (*domain.WalletScanResult, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	snapshot, ok := r.snapshots[fingerprint]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &snapshot, nil
}

func (r *SnapshotRepositoryImpl) DeleteSnapshot(
	_ context.Context, fingerprint string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.snapshots, fingerprint)
	return nil
}
