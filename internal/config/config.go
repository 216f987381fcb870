package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for codetriage.
type FileConfig struct {
	Include    *string `yaml:"include"`
	Exclude    *string `yaml:"exclude"`
	MaxBytes   *int64  `yaml:"max_bytes"`
	Categories *string `yaml:"categories"`
	NoColor    *bool   `yaml:"no_color"`
	NoCache    *bool   `yaml:"no_cache"`

	// Weakness reference data config
	CWE *CWEConfig `yaml:"cwe"`

	// npm audit integration config
	Audit *AuditConfig `yaml:"audit"`
}

// CWEConfig holds configuration for the weakness reference-data client.
type CWEConfig struct {
	// BaseURL overrides the weakness API endpoint.
	BaseURL *string `yaml:"base_url"`

	// CacheDir enables the on-disk record cache at the given directory.
	CacheDir *string `yaml:"cache_dir"`
}

// AuditConfig holds configuration for npm audit integration.
type AuditConfig struct {
	// Enabled toggles dependency auditing. Defaults to true.
	Enabled *bool `yaml:"enabled"`

	// TimeoutSeconds bounds one npm audit invocation. Defaults to 60.
	TimeoutSeconds *int `yaml:"timeout_seconds"`

	// IncludeDev audits devDependencies as well. Defaults to false.
	IncludeDev *bool `yaml:"include_dev"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given root.
// It supports .codetriage.yml/.yaml and codetriage.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".codetriage.yml", ".codetriage.yaml", "codetriage.yml", "codetriage.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "codetriage", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetCWEConfig returns the weakness client configuration, never nil fields
// resolved here; accessors apply defaults.
func (fc FileConfig) GetCWEConfig() CWEConfig {
	if fc.CWE == nil {
		return CWEConfig{}
	}
	return *fc.CWE
}

// GetAuditConfig returns the audit configuration with defaults applied.
func (fc FileConfig) GetAuditConfig() AuditConfig {
	if fc.Audit == nil {
		enabled := true
		return AuditConfig{Enabled: &enabled}
	}
	cfg := *fc.Audit
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	return cfg
}

// GetBaseURL returns the endpoint override or empty string.
func (cc CWEConfig) GetBaseURL() string {
	if cc.BaseURL == nil {
		return ""
	}
	return *cc.BaseURL
}

// GetCacheDir returns the disk cache directory or empty string.
func (cc CWEConfig) GetCacheDir() string {
	if cc.CacheDir == nil {
		return ""
	}
	return *cc.CacheDir
}

// GetTimeoutSeconds returns the audit timeout in seconds (default: 60).
func (ac AuditConfig) GetTimeoutSeconds() int {
	if ac.TimeoutSeconds == nil || *ac.TimeoutSeconds <= 0 {
		return 60
	}
	return *ac.TimeoutSeconds
}
