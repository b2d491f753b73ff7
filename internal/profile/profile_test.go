package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := Profile{Name: "deniz", Email: "deniz@example.com"}

	require.NoError(t, Save(dir, p))
	assert.Equal(t, p, Load(dir))
}

func TestLoadMissingIsZero(t *testing.T) {
	assert.Equal(t, Profile{}, Load(t.TempDir()))
}

func TestLoadCorruptIsZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not json"), 0o644))

	assert.Equal(t, Profile{}, Load(dir))
}
