package usecase

import (
	"context"
	"fmt"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
)

// DeleteDeploymentParams contains parameters for removing a registry record
type DeleteDeploymentParams struct {
	Network string
	Name    string
}

// DeleteDeployment removes a record from the registry. Nothing happens on chain.
type DeleteDeployment struct {
	config    *config.RuntimeConfig
	store     DeploymentRepository
	confirmer Confirmer
}

// NewDeleteDeployment creates a new DeleteDeployment use case
func NewDeleteDeployment(cfg *config.RuntimeConfig, store DeploymentRepository, confirmer Confirmer) *DeleteDeployment {
	return &DeleteDeployment{
		config:    cfg,
		store:     store,
		confirmer: confirmer,
	}
}

// Run executes the use case
func (uc *DeleteDeployment) Run(ctx context.Context, params DeleteDeploymentParams) error {
	network, err := resolveNetworkName(uc.config, params.Network)
	if err != nil {
		return err
	}

	// Fail with ErrNotFound before asking anything
	if _, err := uc.store.GetDeployment(ctx, network, params.Name); err != nil {
		return err
	}

	if !uc.config.Yes {
		if uc.config.NonInteractive {
			return fmt.Errorf("refusing to delete %s on %s without --yes", params.Name, network)
		}
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Delete deployment %s from %s", params.Name, network))
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAborted
		}
	}

	return uc.store.DeleteDeployment(ctx, network, params.Name)
}
