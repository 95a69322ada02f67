package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
query_language: query
languages: [haskell, ocaml]
lenient: true
pattern: "notebooks/**/*.tsqnb"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "query", cfg.QueryLanguage)
	assert.Equal(t, []string{"haskell", "ocaml"}, cfg.Languages)
	require.NotNil(t, cfg.Lenient)
	assert.True(t, *cfg.Lenient)
	assert.Nil(t, cfg.Indent)
	assert.Equal(t, "notebooks/**/*.tsqnb", cfg.Pattern)
}

func TestLoadConfigEmpty(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "lenentt: true\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Empty(t, path)

	want := writeConfig(t, root, "indent: true\n")
	path, err = FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestConfigMarshal(t *testing.T) {
	on := true
	data, err := FileConfig{QueryLanguage: "scm", Indent: &on}.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "query_language: scm\nindent: true\n", string(data))
}
