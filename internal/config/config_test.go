package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/mythduel/internal/game"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.DataDir)
	assert.False(t, cfg.Dev)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MYTHDUEL_ADDR", ":9000")
	t.Setenv("MYTHDUEL_DATA_DIR", "/var/lib/mythduel")
	t.Setenv("MYTHDUEL_PUBLIC_URL", "https://duel.example.com")
	t.Setenv("MYTHDUEL_SHUFFLE", "true")
	t.Setenv("MYTHDUEL_DEV", "not-a-bool")

	cfg := FromEnv(Default())
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/var/lib/mythduel", cfg.DataDir)
	assert.Equal(t, "https://duel.example.com", cfg.PublicURL)
	assert.True(t, cfg.Shuffle)
	assert.False(t, cfg.Dev)
	assert.Empty(t, cfg.Catalog)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mythduel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: ./matches\ndev: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./matches", cfg.DataDir)
	assert.True(t, cfg.Dev)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	cat, err := Default().LoadCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Mythologies())

	path := filepath.Join(t.TempDir(), "cards.yaml")
	yaml := `cards:
  - id: golem
    name: Golem
    mythology: clay
    kind: beast
    hp: 5
    attacks:
      - name: Slam
        damage: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	cat, err = Config{Catalog: path}.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"clay"}, cat.Mythologies())
}

func TestEngineConfig(t *testing.T) {
	cat, err := game.DefaultCatalog()
	require.NoError(t, err)

	assert.Nil(t, Config{}.EngineConfig(cat).Shuffle)
	assert.NotNil(t, Config{Shuffle: true}.EngineConfig(cat).Shuffle)
}
