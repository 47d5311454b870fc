package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
)

type snapshotRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSnapshotRepositoryImpl returns a badger implementation of the domain
// snapshot repository. Snapshots are keyed by the wallet fingerprint so
// nothing stored here allows recovering the wallet keys.
func NewSnapshotRepositoryImpl(store *badgerhold.Store) domain.SnapshotRepository {
	return snapshotRepositoryImpl{store: store}
}

func (s snapshotRepositoryImpl) AddOrUpdateSnapshot(
	_ context.Context, snapshot domain.WalletScanResult,
) error {
	return s.store.Upsert(snapshot.Fingerprint, &snapshot)
}

func (s snapshotRepositoryImpl) GetSnapshot(
	_ context.Context, fingerprint string,
) (*domain.WalletScanResult, error) {
	var snapshot domain.WalletScanResult
	if err := s.store.Get(fingerprint, &snapshot); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

func (s snapshotRepositoryImpl) DeleteSnapshot(
	_ context.Context, fingerprint string,
) error {
	if err := s.store.Delete(fingerprint, &domain.WalletScanResult{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}
