// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nomis52/timetrack/logging"
)

const (
	// Default ledger settings
	defaultLedgerPath = "activities.csv"

	// Default sync settings
	defaultSyncTimeout = 30 * time.Second

	// Default backup settings
	defaultBackupSchedule = "0 0 * * *" // daily at midnight
	defaultBackupKeep     = 12

	// Default monitoring settings
	defaultMetricsPrefix = "timetrack"

	// Default logging settings
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	defaultLogOutput = "stdout"
)

// Config represents the complete application configuration
type Config struct {
	Ledger     LedgerConfig     `yaml:"ledger"`
	Server     ServerConfig     `yaml:"server"`
	Sync       SyncConfig       `yaml:"sync"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    logging.Config   `yaml:"logging"`
}

// LedgerConfig locates the persisted activity ledger
type LedgerConfig struct {
	// Path is the ledger CSV file
	Path string `yaml:"path"`
}

// ServerConfig holds the sync listener settings
type ServerConfig struct {
	// Port is the listening port for the sync service
	Port int `yaml:"port"`

	// Password is the shared secret peers must present
	Password string `yaml:"password"`

	// PasswordHash, when set, is a bcrypt hash checked instead of the
	// plain password
	PasswordHash string `yaml:"password_hash"`
}

// SyncConfig holds settings for talking to a remote peer
type SyncConfig struct {
	// PeerURL is the base URL of the remote sync service
	PeerURL string `yaml:"peer_url"`

	// Timeout bounds each pull/push request
	Timeout time.Duration `yaml:"timeout"`
}

// BackupConfig defines scheduled ledger snapshot behavior
type BackupConfig struct {
	// Dir is the snapshot directory; empty disables backups
	Dir string `yaml:"dir"`

	// Schedule is a standard 5-field cron spec
	Schedule string `yaml:"schedule"`

	// Keep is how many snapshot files to retain
	Keep int `yaml:"keep"`
}

// MonitoringConfig holds metrics push settings
type MonitoringConfig struct {
	VictoriaMetricsURL string `yaml:"victoriametrics_url"`
	MetricsPrefix      string `yaml:"metrics_prefix"`
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger path is required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 0 and 65535")
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("backup keep must not be negative")
	}
	return nil
}

// ValidateServer checks the fields the sync listener cannot run without.
func (c *Config) ValidateServer() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	if c.Server.Password == "" && c.Server.PasswordHash == "" {
		return fmt.Errorf("server password or password hash is required")
	}
	return nil
}

// SetDefaults sets reasonable default values for optional fields
func (c *Config) SetDefaults() {
	if c.Ledger.Path == "" {
		c.Ledger.Path = defaultLedgerPath
	}
	if c.Sync.Timeout == 0 {
		c.Sync.Timeout = defaultSyncTimeout
	}
	if c.Backup.Schedule == "" {
		c.Backup.Schedule = defaultBackupSchedule
	}
	if c.Backup.Keep == 0 {
		c.Backup.Keep = defaultBackupKeep
	}
	if c.Monitoring.MetricsPrefix == "" {
		c.Monitoring.MetricsPrefix = defaultMetricsPrefix
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaultLogOutput
	}
}

// LoadConfig reads the YAML config file at the given path and returns a Config struct
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
