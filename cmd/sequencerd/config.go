package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the sequencerd process configuration, loaded from a YAML file
// via the --config flag.
type Config struct {
	ChainID     string `yaml:"chain_id"`
	DataDir     string `yaml:"data_dir"`
	BlockHeight uint64 `yaml:"block_height"`
	LogLevel    string `yaml:"log_level"`
	// NodeCacheBytes sizes the trie package's fastcache hot-node cache.
	NodeCacheBytes int `yaml:"node_cache_bytes"`
	// MetricsAddr, if non-empty, serves Prometheus metrics on this address.
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns the configuration used when no --config flag is
// given.
func DefaultConfig() Config {
	return Config{
		ChainID:        "interliquid-local",
		DataDir:        "./data",
		BlockHeight:    1,
		LogLevel:       "info",
		NodeCacheBytes: 64 << 20,
		MetricsAddr:    ":9090",
	}
}

// LoadConfig reads and parses a YAML config file at path.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
