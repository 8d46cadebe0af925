package prefs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsZero(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	p, err := Load()
	require.NoError(t, err)
	require.False(t, p.PinVisible)
	require.Empty(t, p.LastAccount)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, Save(Prefs{PinVisible: true, LastAccount: "emberfox2026"}))
	p, err := Load()
	require.NoError(t, err)
	require.True(t, p.PinVisible)
	require.Equal(t, "emberfox2026", p.LastAccount)
}

func TestSaveOverwrites(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, Save(Prefs{PinVisible: true}))
	require.NoError(t, Save(Prefs{PinVisible: false}))
	p, err := Load()
	require.NoError(t, err)
	require.False(t, p.PinVisible)
}
