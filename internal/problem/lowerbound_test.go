package problem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplicitResolver(t *testing.T) {
	r := ExplicitResolver{"a.txt": 10, "b.txt": 20}
	lb, ok := r.Resolve("a.txt")
	require.True(t, ok)
	assert.Equal(t, 10.0, lb)

	_, ok = r.Resolve("missing.txt")
	assert.False(t, ok)
}

func TestJSONResolver_PrefersOptimumOverBoundsLower(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.json")
	contents := `[
		{"path": "barnes/mt10x.txt", "optimum": 918, "bounds": {"lower": 900}},
		{"path": "barnes/mt10c.txt", "optimum": null, "bounds": {"lower": 655}},
		{"path": "unbounded.txt", "optimum": null, "bounds": null}
	]`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	r, err := LoadJSONResolver(path)
	require.NoError(t, err)

	lb, ok := r.Resolve("barnes/mt10x.txt")
	require.True(t, ok)
	assert.Equal(t, 918.0, lb)

	lb, ok = r.Resolve("barnes/mt10c.txt")
	require.True(t, ok)
	assert.Equal(t, 655.0, lb)

	_, ok = r.Resolve("unbounded.txt")
	assert.False(t, ok)

	_, ok = r.Resolve("never-listed.txt")
	assert.False(t, ok)
}

func TestEnvResolver_ParsesCommaSeparatedPairs(t *testing.T) {
	t.Setenv("FJSS_TEST_LOWER_BOUNDS", "a.txt=5, b.txt=12.5")
	r := NewEnvResolver("FJSS_TEST_LOWER_BOUNDS")

	lb, ok := r.Resolve("a.txt")
	require.True(t, ok)
	assert.Equal(t, 5.0, lb)

	lb, ok = r.Resolve("b.txt")
	require.True(t, ok)
	assert.Equal(t, 12.5, lb)
}

func TestEnvResolver_EmptyEnv_ResolvesNothing(t *testing.T) {
	t.Setenv("FJSS_TEST_LOWER_BOUNDS_EMPTY", "")
	r := NewEnvResolver("FJSS_TEST_LOWER_BOUNDS_EMPTY")
	_, ok := r.Resolve("anything")
	assert.False(t, ok)
}
