// Package config resolves the on-disk layout and settings of a POS
// workspace: the base directory, store name, derived state-file paths,
// and the email delivery configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marllondevsec/store-pos/internal/store"
)

// DefaultStoreName is used when the workspace has no pos.yaml override.
const DefaultStoreName = "PandaCell"

// fileConfig is the optional pos.yaml in the workspace base directory.
type fileConfig struct {
	StoreName string `yaml:"store_name"`
	LogDir    string `yaml:"log_dir"`
	OutboxDir string `yaml:"outbox_dir"`
}

// Config holds the resolved workspace layout. All paths are absolute.
type Config struct {
	BaseDir   string
	StoreName string

	LogDir    string // per-date ledgers and summary reports
	OutboxDir string // failed-send retry queue

	SessionFile     string // current_session.txt
	ProductsFile    string // products.json
	EmailConfigFile string // email_config.json
}

// Load resolves the configuration for the workspace rooted at baseDir.
// A pos.yaml file in baseDir may override the store name and the log
// and outbox directory names; everything else is derived.
func Load(baseDir string) (*Config, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}

	fc := fileConfig{}
	yamlPath := filepath.Join(abs, "pos.yaml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", yamlPath, err)
		}
	}

	cfg := &Config{
		BaseDir:   abs,
		StoreName: fc.StoreName,
		LogDir:    fc.LogDir,
		OutboxDir: fc.OutboxDir,
	}
	if cfg.StoreName == "" {
		cfg.StoreName = DefaultStoreName
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.OutboxDir == "" {
		cfg.OutboxDir = "outbox"
	}
	if !filepath.IsAbs(cfg.LogDir) {
		cfg.LogDir = filepath.Join(abs, cfg.LogDir)
	}
	if !filepath.IsAbs(cfg.OutboxDir) {
		cfg.OutboxDir = filepath.Join(abs, cfg.OutboxDir)
	}
	cfg.SessionFile = filepath.Join(abs, "current_session.txt")
	cfg.ProductsFile = filepath.Join(abs, "products.json")
	cfg.EmailConfigFile = filepath.Join(abs, "email_config.json")
	return cfg, nil
}

// EnsureDirs creates the log and outbox directories if missing.
func (c *Config) EnsureDirs() error {
	for _, d := range []string{c.BaseDir, c.LogDir, c.OutboxDir} {
		if err := store.EnsureDir(d); err != nil {
			return err
		}
	}
	return nil
}
