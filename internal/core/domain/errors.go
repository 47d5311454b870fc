package domain

import "errors"

var (
	// ErrUnspentAlreadyLocked is thrown when trying to lock an unspent already
	// locked by another pending transaction
	ErrUnspentAlreadyLocked = errors.New("unspent is already locked")
	// ErrUnspentNotFound ...
	ErrUnspentNotFound = errors.New("unspent not found")
	// ErrSnapshotNotFound ...
	ErrSnapshotNotFound = errors.New("wallet snapshot not found")
)
