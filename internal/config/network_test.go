package config

import (
	"testing"
	"time"

	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNetwork(t *testing.T) {
	project := &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"sepolia": {
				URL:          "https://sepolia.example/${SPARKDEPLOY_TEST_RPC_KEY}",
				ChainID:      11155111,
				PollInterval: "500ms",
				Live:         true,
				ProxyKind:    "uups",
				Accounts:     map[string]string{"deployer": "ops"},
			},
			"mainnet": {URL: "${SPARKDEPLOY_TEST_UNSET_URL}", ChainID: 1},
		},
	}

	t.Run("configured network", func(t *testing.T) {
		t.Setenv("SPARKDEPLOY_TEST_RPC_KEY", "abc")

		network, err := ResolveNetwork(project, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, "sepolia", network.Name)
		assert.Equal(t, "https://sepolia.example/abc", network.RPCURL)
		assert.Equal(t, uint64(11155111), network.ChainID)
		assert.Equal(t, uint64(1), network.Confirmations)
		assert.Equal(t, 500*time.Millisecond, network.PollInterval)
		assert.True(t, network.Live)
		assert.Equal(t, "uups", network.ProxyKind)
		assert.Equal(t, "ops", network.Accounts["deployer"])
	})

	t.Run("unconfigured localhost", func(t *testing.T) {
		network, err := ResolveNetwork(project, "localhost")
		require.NoError(t, err)
		assert.Equal(t, LocalhostURL, network.RPCURL)
		assert.Zero(t, network.ChainID)
		assert.False(t, network.Live)
	})

	t.Run("unknown network lists the configured ones", func(t *testing.T) {
		_, err := ResolveNetwork(project, "polygon")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mainnet, sepolia")
	})

	t.Run("no networks configured", func(t *testing.T) {
		_, err := ResolveNetwork(&config.ProjectConfig{}, "sepolia")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no networks configured")
	})

	t.Run("empty url names the variable", func(t *testing.T) {
		_, err := ResolveNetwork(project, "mainnet")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is SPARKDEPLOY_TEST_UNSET_URL set?")
	})
}
