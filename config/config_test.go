package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "no-such.toml"))

	require.NoError(t, err)
	assert.Empty(t, s.AppKey)
	assert.Empty(t, s.BaseURL)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("appkey = [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telesocial.toml")
	in := &Settings{AppKey: "f180804f-5eda-4e6b-8f4e-ecea52362396", BaseURL: "https://sandbox.example.com"}

	require.NoError(t, in.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telesocial.toml")
	in := &Settings{AppKey: "from-file", BaseURL: "https://file.example.com"}
	require.NoError(t, in.Save(path))

	t.Setenv("TELESOCIAL_APPKEY", "from-env")
	t.Setenv("TELESOCIAL_BASE_URL", "")

	s, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.AppKey)
	assert.Equal(t, "https://file.example.com", s.BaseURL)
}
