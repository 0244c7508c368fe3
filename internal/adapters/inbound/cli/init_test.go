package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/visualkraft/internal/adapters/inbound/cli"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".visualkraft.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: http://localhost:3000")
	assert.Contains(t, string(data), "weights:")
	assert.Contains(t, string(data), "mobile-sm")
}

func TestInitCmd_OutputLoadsBack(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--base-url", "https://staging.example.com"})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
	assert.Len(t, cfg.Viewports, 5)
	assert.Len(t, cfg.Themes, 10)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".visualkraft.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".visualkraft.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".visualkraft.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url:")
	assert.NotEqual(t, "old", string(data))
}

func TestInitCmd_InvalidBaseURL(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--base-url", "localhost"})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}
