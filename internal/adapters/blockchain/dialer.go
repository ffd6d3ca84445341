package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Dialer connects to JSON-RPC endpoints with ethclient
type Dialer struct {
	log *slog.Logger
}

// NewDialer creates a new dialer
func NewDialer(log *slog.Logger) *Dialer {
	return &Dialer{log: log}
}

// Dial connects to the network and checks the endpoint serves the configured
// chain. A network without a chain id adopts the endpoint's.
func (d *Dialer) Dial(ctx context.Context, network *config.Network) (usecase.Backend, error) {
	if network.RPCURL == "" {
		return nil, fmt.Errorf("network %s has no url", network.Name)
	}

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}

	switch {
	case network.ChainID == 0:
		network.ChainID = networkChainID.Uint64()
	case networkChainID.Uint64() != network.ChainID:
		client.Close()
		return nil, fmt.Errorf("%w: %s is configured for chain %d, endpoint serves %d",
			domain.ErrNetworkMismatch, network.Name, network.ChainID, networkChainID.Uint64())
	}

	d.log.Debug("connected", "network", network.Name, "chainId", network.ChainID)
	return client, nil
}

var _ usecase.ChainDialer = (*Dialer)(nil)
