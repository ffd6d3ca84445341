package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artsparkRecord = `{
  "address": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
  "abi": [{"type": "function", "name": "initialize"}],
  "numDeployments": 1,
  "implementation": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
  "proxyKind": "transparent"
}`

// newProject creates a project with one Artspark record on localhost and
// moves into it.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sparkdeploy.toml"), []byte(`
[networks.localhost]
url = "http://127.0.0.1:8545"
chain_id = 31337
`), 0644))

	networkDir := filepath.Join(dir, "deployments", "localhost")
	require.NoError(t, os.MkdirAll(networkDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(networkDir, ".chainId"), []byte("31337"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(networkDir, "Artspark.json"), []byte(artsparkRecord), 0644))

	chdir(t, dir)
	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := Execute(context.Background(), cmd)
	return out.String(), err
}

func TestVersionCmd_NoProject(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sparkdeploy version dev")
}

func TestCommands_RequireProject(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "deployments", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sparkdeploy init")
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created sparkdeploy.toml")
	assert.FileExists(t, filepath.Join(dir, "sparkdeploy.toml"))

	out, err = execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
}

func TestDeploymentsCmds(t *testing.T) {
	newProject(t)

	t.Run("list json", func(t *testing.T) {
		out, err := execute(t, "deployments", "list", "--format", "json")
		require.NoError(t, err)

		var decoded struct {
			Network     string `json:"network"`
			ChainID     uint64 `json:"chainId"`
			Deployments []struct {
				Name    string `json:"name"`
				Address string `json:"address"`
			} `json:"deployments"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "localhost", decoded.Network)
		assert.Equal(t, uint64(31337), decoded.ChainID)
		require.Len(t, decoded.Deployments, 1)
		assert.Equal(t, "Artspark", decoded.Deployments[0].Name)
	})

	t.Run("show yaml", func(t *testing.T) {
		out, err := execute(t, "deployments", "show", "Artspark", "-f", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "address:")
		assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.Contains(t, out, "proxyKind: transparent")
	})

	t.Run("show unknown", func(t *testing.T) {
		_, err := execute(t, "deployments", "show", "Missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("show without a name needs a terminal", func(t *testing.T) {
		_, err := execute(t, "deployments", "show")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-interactive")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := execute(t, "deployments", "list", "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})

	t.Run("delete with --yes", func(t *testing.T) {
		_, err := execute(t, "deployments", "delete", "Artspark", "--yes")
		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join("deployments", "localhost", "Artspark.json"))
	})
}

func TestNetworksCmd(t *testing.T) {
	newProject(t)

	out, err := execute(t, "networks", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "localhost"`)
	assert.Contains(t, out, `"deployments": 1`)
}

func TestScriptsCmd(t *testing.T) {
	newProject(t)

	out, err := execute(t, "scripts")
	require.NoError(t, err)
	assert.Contains(t, out, "Artspark")
}

func TestDeployCmd_UnknownTag(t *testing.T) {
	newProject(t)

	_, err := execute(t, "deploy", "--tags", "Nothing")
	assert.ErrorIs(t, err, domain.ErrNoScripts)
}

func TestExecute_ReleasesFailedCommand(t *testing.T) {
	newProject(t)
	color.NoColor = true

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"deployments", "show", "Missing"})

	err := Execute(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrNotFound)

	show, _, err := cmd.Find([]string{"deployments", "show"})
	require.NoError(t, err)
	require.NotNil(t, show.Context())
	assert.ErrorIs(t, show.Context().Err(), context.Canceled)
}

func TestSession_CloseRunsInReverseOnce(t *testing.T) {
	var order []int
	s := &session{}
	s.add(func() { order = append(order, 1) })
	s.add(func() { order = append(order, 2) })

	s.close()
	s.close()

	assert.Equal(t, []int{2, 1}, order)
}
