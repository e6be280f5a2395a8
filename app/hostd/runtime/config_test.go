package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7310", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.Workspace)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exthost.yaml")
	payload := []byte("listen_addr: \":9000\"\ncontainer_label: \"outline\"\nsymbol_db_path: \"db/symbols.db\"\n")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "outline", cfg.ContainerLabel)

	cfg.Workspace = dir
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, filepath.Join(dir, "db", "symbols.db"), cfg.SymbolDBPath)
}

func TestNormalizeRequiresWorkspace(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.Normalize())
}

func TestRuntimeAssembly(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Workspace:    dir,
		SymbolDBPath: filepath.Join(dir, "symbols.db"),
		LogPath:      filepath.Join(dir, "host.log"),
	}
	rt, err := New(cfg)
	require.NoError(t, err)
	defer rt.Close()

	assert.NotNil(t, rt.Server)
	assert.NotNil(t, rt.Store)
	assert.Equal(t, dir, rt.Explorer.Root())

	// The go outline provider is registered for go documents.
	doc := rt.Documents
	assert.NotNil(t, doc)
}
