package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFileFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timer.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"id":1}`), 0644))
	first, err := CalculateFileFingerprint(path)
	require.NoError(t, err)
	assert.Len(t, first, 8)

	again, err := CalculateFileFingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":2}`), 0644))
	changed, err := CalculateFileFingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)

	_, err = CalculateFileFingerprint(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
