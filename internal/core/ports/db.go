package ports

import (
	"github.com/meridian-wallet/meridiand/internal/core/domain"
)

// RepoManager defines the access points to the storage layer, regardless of
// the backing store.
type RepoManager interface {
	UnspentRepository() domain.UnspentRepository
	SnapshotRepository() domain.SnapshotRepository

	Close()
}
