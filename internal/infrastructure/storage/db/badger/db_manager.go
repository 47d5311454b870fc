package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/meridian-wallet/meridiand/internal/core/domain"
	"github.com/meridian-wallet/meridiand/internal/core/ports"
)

// RepoManager holds the badgerhold stores in a single data structure. Scan
// snapshots and unspents live in dedicated directories under the base data
// dir.
type RepoManager struct {
	snapshotStore *badgerhold.Store
	unspentStore  *badgerhold.Store

	unspentRepository  domain.UnspentRepository
	snapshotRepository domain.SnapshotRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	snapshotDb, err := createDb(filepath.Join(baseDbDir, "snapshot"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	unspentDb, err := createDb(filepath.Join(baseDbDir, "unspent"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening unspent db: %w", err)
	}

	return &RepoManager{
		snapshotStore:      snapshotDb,
		unspentStore:       unspentDb,
		unspentRepository:  NewUnspentRepositoryImpl(unspentDb),
		snapshotRepository: NewSnapshotRepositoryImpl(snapshotDb),
	}, nil
}

func (d *RepoManager) UnspentRepository() domain.UnspentRepository {
	return d.unspentRepository
}

func (d *RepoManager) SnapshotRepository() domain.SnapshotRepository {
	return d.snapshotRepository
}

func (d *RepoManager) Close() {
	d.snapshotStore.Close()
	d.unspentStore.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
