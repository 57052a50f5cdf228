package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
)

const (
	configDir  = "config"
	configFile = "stakecore.toml"
)

type StorageType string

const (
	MemoryStorage StorageType = "memory"
	BadgerStorage StorageType = "badger"
)

// Config is the configuration of a staking node.
type Config struct {
	RootDir string `toml:"-" mapstructure:"-"`

	LogLevel  string  `toml:"log-level" mapstructure:"log-level"`
	LogFormat string  `toml:"log-format" mapstructure:"log-format"`
	Storage   Storage `toml:"storage" mapstructure:"storage"`
	API       API     `toml:"api" mapstructure:"api"`
}

type Storage struct {
	Type StorageType `toml:"type" mapstructure:"type"`
	Path string      `toml:"path" mapstructure:"path"`
}

type API struct {
	ListenAddress   string        `toml:"listen-address" mapstructure:"listen-address"`
	ReadTimeout     time.Duration `toml:"read-timeout" mapstructure:"read-timeout"`
	ConnectionLimit int           `toml:"connection-limit" mapstructure:"connection-limit"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	c := new(Config)
	c.LogLevel = "info"
	c.LogFormat = "plain"
	c.Storage.Type = BadgerStorage
	c.Storage.Path = filepath.Join("data", "stakecore.db")
	c.API.ListenAddress = "http://0.0.0.0:26660"
	c.API.ReadTimeout = 10 * time.Second
	c.API.ConnectionLimit = 500
	return c
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case MemoryStorage:
		// Ok
	case BadgerStorage:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for %s storage", c.Storage.Type)
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.API.ListenAddress == "" {
		return fmt.Errorf("API listen address is required")
	}
	return nil
}

// MakeAbsolute resolves path relative to root unless it is already absolute.
func MakeAbsolute(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Load reads the node configuration from dir.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, configDir, configFile))
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read: %v", err)
	}

	c := Default()
	err = v.Unmarshal(c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal: %v", err)
	}

	c.RootDir = dir
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %v", err)
	}
	return c, nil
}

// Store writes the node configuration to its root directory.
func Store(config *Config) error {
	err := os.MkdirAll(filepath.Join(config.RootDir, configDir), 0700)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(config.RootDir, configDir, configFile))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(config)
}
