package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/artifacts"
	"github.com/abdidvp/visualkraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PrepareCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots", "validation")
	s := artifacts.New(dir)

	require.NoError(t, s.Prepare())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write check must not leave files behind")
}

func TestStore_PrepareFailsFastWhenPathIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := artifacts.New(filepath.Join(file, "sub")).Prepare()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutputUnavailable)
}

func TestStore_SaveWritesBytes(t *testing.T) {
	s := artifacts.New(t.TempDir())
	require.NoError(t, s.Prepare())

	path, err := s.Save("home_mobile_1.png", []byte("png"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestStore_SaveNeverOverwrites(t *testing.T) {
	s := artifacts.New(t.TempDir())
	require.NoError(t, s.Prepare())

	first, err := s.Save("home_desktop_1.png", []byte("a"))
	require.NoError(t, err)
	second, err := s.Save("home_desktop_1.png", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "home_desktop_1-1.png", filepath.Base(second))
	data, _ := os.ReadFile(first)
	assert.Equal(t, "a", string(data))
}

func TestStore_SaveRejectsPathNames(t *testing.T) {
	s := artifacts.New(t.TempDir())
	require.NoError(t, s.Prepare())

	_, err := s.Save("../escape.png", nil)
	assert.Error(t, err)
}
