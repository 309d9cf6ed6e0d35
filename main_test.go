package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadApp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `ledger:
  path: activities.csv
server:
  port: 9321
  password: hunter2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, logger, err := loadApp(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.NotNil(t, logger)
	assert.Equal(t, "activities.csv", cfg.Ledger.Path)
	assert.Equal(t, 9321, cfg.Server.Port)
}

func TestLoadApp_MissingConfig(t *testing.T) {
	_, _, err := loadApp("/no/such/config.yaml")
	assert.Error(t, err)
}
