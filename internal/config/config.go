package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/mythduel/internal/game"
)

// Config holds server settings.
type Config struct {
	Addr      string `yaml:"addr" json:"addr"`
	Catalog   string `yaml:"catalog" json:"catalog"`       // card catalog YAML; empty uses the built-in one
	DataDir   string `yaml:"data_dir" json:"data_dir"`     // file store directory; empty keeps matches in memory
	PublicURL string `yaml:"public_url" json:"public_url"` // base URL used in invite codes
	Shuffle   bool   `yaml:"shuffle" json:"shuffle"`
	Dev       bool   `yaml:"dev" json:"dev"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Addr: ":8080",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadCatalog returns the configured card catalog.
func (c Config) LoadCatalog() (*game.StaticCatalog, error) {
	if c.Catalog == "" {
		return game.DefaultCatalog()
	}
	return game.LoadCatalog(c.Catalog)
}

// EngineConfig builds the engine settings for this configuration.
func (c Config) EngineConfig(catalog game.Catalog) game.Config {
	ec := game.Config{Catalog: catalog}
	if c.Shuffle {
		ec.Shuffle = game.RandomShuffle
	}
	return ec
}
