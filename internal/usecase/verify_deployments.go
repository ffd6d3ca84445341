package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// VerifyDeploymentsParams contains parameters for checking deployments on chain
type VerifyDeploymentsParams struct {
	Names []string // empty checks every record of the network
}

// VerifyResult is the on-chain state of one record
type VerifyResult struct {
	Deployment     *models.Deployment
	HasCode        bool
	Implementation bool // implementation address also has code, when recorded
	Error          error
}

// OK reports whether the record matches the chain
func (r *VerifyResult) OK() bool {
	return r.Error == nil && r.HasCode && (r.Deployment.Implementation == "" || r.Implementation)
}

// VerifyDeploymentsResult contains the results for a network
type VerifyDeploymentsResult struct {
	Network string
	Results []*VerifyResult
	Failed  int
}

// VerifyDeployments checks that code exists at every recorded address
type VerifyDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentRepository
	dialer ChainDialer
	sink   ProgressSink
}

// NewVerifyDeployments creates a new VerifyDeployments use case
func NewVerifyDeployments(cfg *config.RuntimeConfig, store DeploymentRepository, dialer ChainDialer, sink ProgressSink) *VerifyDeployments {
	return &VerifyDeployments{
		config: cfg,
		store:  store,
		dialer: dialer,
		sink:   sink,
	}
}

// Run executes the use case
func (uc *VerifyDeployments) Run(ctx context.Context, params VerifyDeploymentsParams) (*VerifyDeploymentsResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected: pass --network")
	}

	deployments, err := uc.selectDeployments(ctx, network.Name, params.Names)
	if err != nil {
		return nil, err
	}

	backend, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}
	if closer, ok := backend.(interface{ Close() }); ok {
		defer closer.Close()
	}

	result := &VerifyDeploymentsResult{Network: network.Name}
	for i, deployment := range deployments {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "verifying",
			Current: i + 1,
			Total:   len(deployments),
			Message: fmt.Sprintf("Checking %s", deployment.Name),
			Spinner: true,
		})

		vr := &VerifyResult{Deployment: deployment}
		vr.HasCode, vr.Error = hasCode(ctx, backend, deployment.Address)
		if vr.Error == nil && deployment.Implementation != "" {
			vr.Implementation, vr.Error = hasCode(ctx, backend, deployment.Implementation)
		}
		if !vr.OK() {
			result.Failed++
		}
		result.Results = append(result.Results, vr)
	}

	return result, nil
}

func (uc *VerifyDeployments) selectDeployments(ctx context.Context, network string, names []string) ([]*models.Deployment, error) {
	if len(names) == 0 {
		deployments, err := uc.store.ListDeployments(ctx, network)
		if err != nil {
			return nil, err
		}
		sort.Slice(deployments, func(i, j int) bool {
			return deployments[i].Name < deployments[j].Name
		})
		return deployments, nil
	}

	deployments := make([]*models.Deployment, 0, len(names))
	for _, name := range names {
		d, err := uc.store.GetDeployment(ctx, network, name)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return deployments, nil
}

func hasCode(ctx context.Context, backend Backend, address string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("invalid address %q", address)
	}
	code, err := backend.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Errorf("failed to get code at %s: %w", address, err)
	}
	return len(code) > 0, nil
}
