package config

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DataDir       string  `envconfig:"DATA_DIR" default:"./data"`
	LogFile       string  `envconfig:"LOG_FILE" default:"topomap.log"`
	LogLevel      string  `envconfig:"LOG_LEVEL" default:"info"`
	LogMaxSizeMB  int     `envconfig:"LOG_MAX_SIZE_MB" default:"10"`
	LogBackups    int     `envconfig:"LOG_BACKUPS" default:"3"`
	Catalog       string  `envconfig:"CATALOG"`
	Map           string  `envconfig:"MAP"`
	StorageKey    string  `envconfig:"STORAGE_KEY" default:"topomap.session"`
	HoverDistance float64 `envconfig:"HOVER_DISTANCE" default:"6"`
	Snap          bool    `envconfig:"SNAP" default:"true"`
	Unit          string  `envconfig:"UNIT" default:"m"`
	InMemory      bool    `envconfig:"IN_MEMORY" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("topomap", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StoreDir is where the badger database lives. Empty means in memory.
func (c *Config) StoreDir() string {
	if c.InMemory {
		return ""
	}
	return filepath.Join(c.DataDir, "store")
}

// LogPath resolves LogFile against DataDir unless it is absolute or "-".
func (c *Config) LogPath() string {
	if c.LogFile == "" || c.LogFile == "-" || filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}
