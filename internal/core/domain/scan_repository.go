package domain

import "context"

// SnapshotRepository persists the outcome of wallet scans keyed by the
// one-way wallet fingerprint.
type SnapshotRepository interface {
	AddOrUpdateSnapshot(ctx context.Context, snapshot WalletScanResult) error
	GetSnapshot(ctx context.Context, fingerprint string) (*WalletScanResult, error)
	DeleteSnapshot(ctx context.Context, fingerprint string) error
}
