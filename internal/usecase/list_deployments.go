package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Network defaults to the selected network
	Network string
}

// DeploymentListResult contains the deployments of one network
type DeploymentListResult struct {
	Network     string
	Deployments []*models.Deployment
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentRepository
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	network, err := resolveNetworkName(uc.config, params.Network)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	deployments, err := uc.store.ListDeployments(ctx, network)
	if err != nil {
		return nil, err
	}

	sort.Slice(deployments, func(i, j int) bool {
		return deployments[i].Name < deployments[j].Name
	})

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Network:     network,
		Deployments: deployments,
	}, nil
}

// resolveNetworkName picks the explicit network or falls back to the selected one
func resolveNetworkName(cfg *config.RuntimeConfig, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if cfg.Network != nil {
		return cfg.Network.Name, nil
	}
	return "", fmt.Errorf("no network selected: pass --network")
}
