package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
)

// UnspentRepositoryImpl represents an in memory storage
type UnspentRepositoryImpl struct {
	unspents map[domain.UnspentKey]domain.Unspent
	lock     *sync.RWMutex
}

// NewUnspentRepositoryImpl returns a new empty UnspentRepositoryImpl
func NewUnspentRepositoryImpl() *UnspentRepositoryImpl {
	return &UnspentRepositoryImpl{
		unspents: map[domain.UnspentKey]domain.Unspent{},
		lock:     &sync.RWMutex{},
	}
}

// AddUnspents adds the given unspents to the storage, skipping those already
// present. Lock state of known unspents is preserved.
func (r *UnspentRepositoryImpl) AddUnspents(
	_ context.Context, unspents []domain.Unspent,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, u := range unspents {
		if _, ok := r.unspents[u.Key()]; !ok {
			r.unspents[u.Key()] = u
		}
	}
	return nil
}

// ReplaceUnspents swaps the stored set of the given wallet with the given
// one, carrying over the lock state of unspents that survive the replacement.
// Unspents of other wallets are left untouched.
func (r *UnspentRepositoryImpl) ReplaceUnspents(
	_ context.Context, fingerprint string, unspents []domain.Unspent,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	next := make(map[domain.UnspentKey]domain.Unspent, len(unspents))
	for key, u := range r.unspents {
		if u.Fingerprint != fingerprint {
			next[key] = u
		}
	}
	for _, u := range unspents {
		if prev, ok := r.unspents[u.Key()]; ok && prev.IsLocked() {
			u.Locked = prev.Locked
			u.LockedBy = prev.LockedBy
		}
		next[u.Key()] = u
	}
	r.unspents = next
	return nil
}

// GetAllUnspents returns all the unspents stored for the given wallet
func (r *UnspentRepositoryImpl) GetAllUnspents(
	_ context.Context, fingerprint string,
) []domain.Unspent {
	r.lock.RLock()
	defer r.lock.RUnlock()

	unspents := make([]domain.Unspent, 0, len(r.unspents))
	for _, u := range r.unspents {
		if u.Fingerprint == fingerprint {
			unspents = append(unspents, u)
		}
	}
	return unspents
}

// GetAvailableUnspents returns the list of confirmed, unlocked unspents of
// the given wallet
func (r *UnspentRepositoryImpl) GetAvailableUnspents(
	_ context.Context, fingerprint string,
) ([]domain.Unspent, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	unspents := make([]domain.Unspent, 0, len(r.unspents))
	for _, u := range r.unspents {
		if u.Fingerprint == fingerprint && u.IsConfirmed() && !u.IsLocked() {
			unspents = append(unspents, u)
		}
	}
	return unspents, nil
}

// GetBalance returns the total amount of unspents of the given wallet for
// the given addresses
func (r *UnspentRepositoryImpl) GetBalance(
	_ context.Context, fingerprint string, addresses []string,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var balance uint64
	for _, u := range r.unspents {
		if u.Fingerprint == fingerprint && matchesAddresses(u, addresses) {
			balance += u.Value
		}
	}
	return balance, nil
}

// GetUnlockedBalance returns the total amount of confirmed, unlocked
// unspents of the given wallet for the given addresses
func (r *UnspentRepositoryImpl) GetUnlockedBalance(
	_ context.Context, fingerprint string, addresses []string,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var balance uint64
	for _, u := range r.unspents {
		if u.Fingerprint == fingerprint && matchesAddresses(u, addresses) &&
			u.IsConfirmed() && !u.IsLocked() {
			balance += u.Value
		}
	}
	return balance, nil
}

// GetUnspentForKey returns the unspent with the given key, if any
func (r *UnspentRepositoryImpl) GetUnspentForKey(
	_ context.Context, key domain.UnspentKey,
) (*domain.Unspent, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	u, ok := r.unspents[key]
	if !ok {
		return nil, domain.ErrUnspentNotFound
	}
	return &u, nil
}

// LockUnspents locks all the given unspents for the given owner. If any of
// them is already locked by another owner none is locked.
func (r *UnspentRepositoryImpl) LockUnspents(
	_ context.Context, keys []domain.UnspentKey, txID uuid.UUID,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		u, ok := r.unspents[key]
		if !ok {
			return domain.ErrUnspentNotFound
		}
		if u.IsLocked() && u.LockedBy.String() != txID.String() {
			return domain.ErrUnspentAlreadyLocked
		}
	}

	for _, key := range keys {
		u := r.unspents[key]
		if err := u.Lock(&txID); err != nil {
			return err
		}
		r.unspents[key] = u
	}
	return nil
}

// UnlockUnspents unlocks the given locked unspents
func (r *UnspentRepositoryImpl) UnlockUnspents(
	_ context.Context, keys []domain.UnspentKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		if u, ok := r.unspents[key]; ok {
			u.Unlock()
			r.unspents[key] = u
		}
	}
	return nil
}

func matchesAddresses(u domain.Unspent, addresses []string) bool {
	if len(addresses) == 0 {
		return true
	}
	for _, addr := range addresses {
		if u.Address == addr {
			return true
		}
	}
	return false
}
