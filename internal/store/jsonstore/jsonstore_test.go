package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/atlas/internal/model"
)

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "europe.json")
	in := []model.Country{
		{Name: "France", Population: 67391582, Region: "Europe", Capital: "Paris", Flag: "https://flagcdn.com/fr.svg", Code: "fr"},
	}

	require.NoError(t, Save(path, in))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  {\n    \"name\": \"France\"")

	var out []model.Country
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Save(path, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, Save(path, []model.Country{{Name: "Kenya", Code: "ke"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "stale")
	assert.Contains(t, string(b), "Kenya")
}

func TestSave_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := Save(filepath.Join(file, "sub", "x.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkdir")
}
