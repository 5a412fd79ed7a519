package problem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSet_PrefixSelectsLexicographicallySortedMatches(t *testing.T) {
	dir := t.TempDir()
	contents := "1 1\n1 1 1 3\n"
	for _, name := range []string{"mt10x.txt", "mt10c.txt", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}

	prefix := filepath.Join(dir, "mt10")
	problems, err := LoadSet(prefix, nil)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, filepath.Join(dir, "mt10c.txt"), problems[0].Name)
	assert.Equal(t, filepath.Join(dir, "mt10x.txt"), problems[1].Name)
}

func TestLoadSet_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	contents := "1 1\n1 1 1 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(contents), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte(contents), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.dat"), []byte(contents), 0644))

	problems, err := LoadSet(filepath.Join(dir, "*.txt"), nil)
	require.NoError(t, err)
	assert.Len(t, problems, 2)
}

func TestLoadSet_NoMatches_ReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	problems, err := LoadSet(filepath.Join(dir, "nonexistent"), nil)
	require.NoError(t, err)
	assert.Empty(t, problems)
}
