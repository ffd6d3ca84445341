package usecase

import (
	"context"
	"sort"

	"github.com/artspark/sparkdeploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus combines the configuration of a network with its registry state
type NetworkStatus struct {
	Name        string
	URL         string
	ChainID     uint64 // configured chain id, or the one recorded in the registry
	Live        bool
	Configured  bool
	Current     bool
	Deployments int
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config *config.RuntimeConfig
	store  DeploymentRepository
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, store DeploymentRepository) *ListNetworks {
	return &ListNetworks{
		config: cfg,
		store:  store,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	statuses := make(map[string]*NetworkStatus)

	if uc.config.Project != nil {
		for name, nc := range uc.config.Project.Networks {
			statuses[name] = &NetworkStatus{
				Name:       name,
				URL:        nc.URL,
				ChainID:    nc.ChainID,
				Live:       nc.Live,
				Configured: true,
			}
		}
	}

	registered, err := uc.store.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	for _, rn := range registered {
		status, ok := statuses[rn.Name]
		if !ok {
			status = &NetworkStatus{Name: rn.Name}
			statuses[rn.Name] = status
		}
		if status.ChainID == 0 {
			status.ChainID = rn.ChainID
		}
		status.Deployments = rn.Deployments
	}

	if uc.config.Network != nil {
		if status, ok := statuses[uc.config.Network.Name]; ok {
			status.Current = true
		}
	}

	networks := make([]NetworkStatus, 0, len(statuses))
	for _, status := range statuses {
		networks = append(networks, *status)
	}
	sort.Slice(networks, func(i, j int) bool {
		return networks[i].Name < networks[j].Name
	})

	return &ListNetworksResult{Networks: networks}, nil
}
