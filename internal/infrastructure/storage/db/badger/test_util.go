package dbbadger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-wallet/meridiand/internal/core/ports"
)

func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	return repoManager
}
