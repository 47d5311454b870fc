package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
)

type unspentRepositoryImpl struct {
	store *badgerhold.Store
}

// NewUnspentRepositoryImpl returns a badger implementation of the domain
// unspent repository.
func NewUnspentRepositoryImpl(store *badgerhold.Store) domain.UnspentRepository {
	return unspentRepositoryImpl{store: store}
}

func (u unspentRepositoryImpl) AddUnspents(
	_ context.Context, unspents []domain.Unspent,
) error {
	for _, unspent := range unspents {
		if err := u.store.Insert(unspent.Key(), &unspent); err != nil {
			if errors.Is(err, badgerhold.ErrKeyExists) {
				continue
			}
			return err
		}
	}
	return nil
}

func (u unspentRepositoryImpl) ReplaceUnspents(
	ctx context.Context, fingerprint string, unspents []domain.Unspent,
) error {
	stored := u.GetAllUnspents(ctx, fingerprint)
	lockedBy := make(map[domain.UnspentKey]*uuid.UUID)
	for _, s := range stored {
		if s.IsLocked() {
			lockedBy[s.Key()] = s.LockedBy
		}
	}

	if err := u.store.DeleteMatching(
		&domain.Unspent{}, badgerhold.Where("Fingerprint").Eq(fingerprint),
	); err != nil {
		return err
	}

	for _, unspent := range unspents {
		if owner, ok := lockedBy[unspent.Key()]; ok {
			unspent.Locked = true
			unspent.LockedBy = owner
		}
		if err := u.store.Upsert(unspent.Key(), &unspent); err != nil {
			return err
		}
	}
	return nil
}

func (u unspentRepositoryImpl) GetAllUnspents(
	_ context.Context, fingerprint string,
) []domain.Unspent {
	unspents := make([]domain.Unspent, 0)
	if err := u.store.Find(
		&unspents, badgerhold.Where("Fingerprint").Eq(fingerprint),
	); err != nil {
		return []domain.Unspent{}
	}
	return unspents
}

func (u unspentRepositoryImpl) GetAvailableUnspents(
	_ context.Context, fingerprint string,
) ([]domain.Unspent, error) {
	query := badgerhold.Where("Fingerprint").Eq(fingerprint).
		And("Locked").Eq(false).
		And("Confirmations").Gt(uint64(0))
	return u.findUnspents(query)
}

func (u unspentRepositoryImpl) GetBalance(
	_ context.Context, fingerprint string, addresses []string,
) (uint64, error) {
	unspents, err := u.findUnspents(queryForWallet(fingerprint, addresses))
	if err != nil {
		return 0, err
	}

	var balance uint64
	for _, v := range unspents {
		balance += v.Value
	}
	return balance, nil
}

func (u unspentRepositoryImpl) GetUnlockedBalance(
	_ context.Context, fingerprint string, addresses []string,
) (uint64, error) {
	query := queryForWallet(fingerprint, addresses).
		And("Locked").Eq(false).
		And("Confirmations").Gt(uint64(0))

	unspents, err := u.findUnspents(query)
	if err != nil {
		return 0, err
	}

	var balance uint64
	for _, v := range unspents {
		balance += v.Value
	}
	return balance, nil
}

func (u unspentRepositoryImpl) GetUnspentForKey(
	_ context.Context, key domain.UnspentKey,
) (*domain.Unspent, error) {
	var unspent domain.Unspent
	if err := u.store.Get(key, &unspent); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrUnspentNotFound
		}
		return nil, err
	}
	return &unspent, nil
}

// LockUnspents runs the check and the writes in a single badger transaction
// so that two concurrent callers can never both pass the check phase and
// lock the same unspents. Transaction conflicts are retried so that the
// loser observes the winner's lock.
func (u unspentRepositoryImpl) LockUnspents(
	_ context.Context, keys []domain.UnspentKey, txID uuid.UUID,
) error {
	for {
		err := u.store.Badger().Update(func(tx *badger.Txn) error {
			unspents := make([]domain.Unspent, 0, len(keys))
			for _, key := range keys {
				var unspent domain.Unspent
				if err := u.store.TxGet(tx, key, &unspent); err != nil {
					if errors.Is(err, badgerhold.ErrNotFound) {
						return domain.ErrUnspentNotFound
					}
					return err
				}
				if unspent.IsLocked() && unspent.LockedBy.String() != txID.String() {
					return domain.ErrUnspentAlreadyLocked
				}
				unspents = append(unspents, unspent)
			}

			for _, unspent := range unspents {
				if err := unspent.Lock(&txID); err != nil {
					return err
				}
				if err := u.store.TxUpdate(tx, unspent.Key(), &unspent); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
}

func (u unspentRepositoryImpl) UnlockUnspents(
	ctx context.Context, keys []domain.UnspentKey,
) error {
	for _, key := range keys {
		unspent, err := u.GetUnspentForKey(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrUnspentNotFound) {
				continue
			}
			return err
		}
		unspent.Unlock()
		if err := u.store.Update(unspent.Key(), unspent); err != nil {
			return err
		}
	}
	return nil
}

func (u unspentRepositoryImpl) findUnspents(
	query *badgerhold.Query,
) ([]domain.Unspent, error) {
	unspents := make([]domain.Unspent, 0)
	if err := u.store.Find(&unspents, query); err != nil {
		return nil, err
	}
	return unspents, nil
}

func queryForWallet(fingerprint string, addresses []string) *badgerhold.Query {
	query := badgerhold.Where("Fingerprint").Eq(fingerprint)
	if len(addresses) == 0 {
		return query
	}
	iface := make([]interface{}, 0, len(addresses))
	for _, v := range addresses {
		iface = append(iface, v)
	}
	return query.And("Address").In(iface...)
}
