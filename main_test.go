package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robmorgan/fadeled/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fadeled.log")

	restore, err := logToFile(path)
	require.NoError(t, err)
	logger.GetProjectLogger().Warn("drawn over the monitor")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "drawn over the monitor")
}
