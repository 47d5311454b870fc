package inmemory

import (
	"github.com/meridian-wallet/meridiand/internal/core/domain"
	"github.com/meridian-wallet/meridiand/internal/core/ports"
)

type RepoManager struct {
	unspentRepository  domain.UnspentRepository
	snapshotRepository domain.SnapshotRepository
}

// NewRepoManager returns a volatile storage, the default for an interactive
// session. Snapshots stored here do not survive a restart.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		unspentRepository:  NewUnspentRepositoryImpl(),
		snapshotRepository: NewSnapshotRepositoryImpl(),
	}
}

func (d *RepoManager) UnspentRepository() domain.UnspentRepository {
	return d.unspentRepository
}

func (d *RepoManager) SnapshotRepository() domain.SnapshotRepository {
	return d.snapshotRepository
}

func (d *RepoManager) Close() {}
