package community

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	list, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, list)
	require.Equal(t, "EMB", list[0].Symbol)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communities.toml")
	body := `
[[community]]
symbol = "OAK"
name = "Oakshade Exchange"
subdomain = "oakshade"

[[community]]
symbol = "RVR"
name = "River Collective"
subdomain = "river"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	list, err := Load(path)
	require.NoError(t, err)
	require.Len(t, list, 2)

	c, ok := Find(list, "rvr")
	require.True(t, ok)
	require.Equal(t, "River Collective", c.Name)
}

func TestLoadExplicitMissingIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadRejectsMissingSymbol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communities.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[community]]\nname = \"anon\"\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLabel(t *testing.T) {
	list := []Community{{Symbol: "OAK", Name: "Oakshade Exchange"}}
	require.Equal(t, "Oakshade Exchange (OAK)", Label(list, "OAK"))
	require.Equal(t, "ZZZ", Label(list, "ZZZ"))
}
