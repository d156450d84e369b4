package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	v, err := LoadView()
	require.NoError(t, err)
	require.Equal(t, View{}, v)

	require.NoError(t, SaveView(View{Sort: "city"}))
	v, err = LoadView()
	require.NoError(t, err)
	require.Equal(t, "city", v.Sort)
}

func TestLoadViewCorrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	path, err := viewPath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err = LoadView()
	require.Error(t, err)
	require.Equal(t, viewFile, filepath.Base(path))
}
