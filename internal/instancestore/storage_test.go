package instancestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjss-ccgp/ccgp/internal/mock"
)

func TestEnsureLocal_CacheHit_SkipsDownload(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "mk01")
	require.NoError(t, os.WriteFile(localPath, []byte("cached"), 0644))

	store := &mock.MockStorage{}

	err := EnsureLocal(context.Background(), store, "mk01", localPath)
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "DownloadFile", 0)
}

func TestEnsureLocal_CacheMiss_Downloads(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "mk01")

	store := &mock.MockStorage{}
	store.ExpectDownloadFile("mk01", localPath, nil)

	err := EnsureLocal(context.Background(), store, "mk01", localPath)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestEnsureLocal_DownloadFails_WrapsError(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "mk01")

	store := &mock.MockStorage{}
	store.ExpectDownloadFile("mk01", localPath, assert.AnError)

	err := EnsureLocal(context.Background(), store, "mk01", localPath)
	require.Error(t, err)
}
