package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/artspark/sparkdeploy/internal/domain/config"
)

// LocalhostURL is used for the localhost network when it is not configured
const LocalhostURL = "http://127.0.0.1:8545"

// ResolveNetwork turns a [networks.<name>] section into a runtime network.
// "localhost" works without configuration and takes its chain id from the node.
func ResolveNetwork(project *config.ProjectConfig, name string) (*config.Network, error) {
	nc, ok := project.Networks[name]
	if !ok {
		if name == "localhost" {
			return &config.Network{Name: name, RPCURL: LocalhostURL, Confirmations: 1}, nil
		}
		available := sortedKeys(project.Networks)
		if len(available) == 0 {
			return nil, fmt.Errorf("no networks configured in %s", ProjectFile)
		}
		return nil, fmt.Errorf("unknown network (available: %s)", strings.Join(available, ", "))
	}

	network := &config.Network{
		Name:          name,
		RPCURL:        os.ExpandEnv(nc.URL),
		ChainID:       nc.ChainID,
		Confirmations: nc.Confirmations,
		Live:          nc.Live,
		ProxyKind:     nc.ProxyKind,
		Accounts:      nc.Accounts,
	}
	if network.Confirmations == 0 {
		network.Confirmations = 1
	}
	if nc.PollInterval != "" {
		interval, err := time.ParseDuration(nc.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval: %w", err)
		}
		network.PollInterval = interval
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("url is empty%s", envHint(nc.URL))
	}
	return network, nil
}
