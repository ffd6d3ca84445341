package usecase

import (
	"context"
	"math/big"

	"github.com/artspark/sparkdeploy/internal/deploy"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// DeploymentRepository handles persistence of deployment records, one
// directory per network.
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error)
	ListNetworks(ctx context.Context) ([]models.RegistryNetwork, error)
	DeleteDeployment(ctx context.Context, network, name string) error
}

// ContractRepository provides access to compiled contracts
type ContractRepository interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
}

// AccountResolver resolves named accounts for a network
type AccountResolver interface {
	NamedAccounts(ctx context.Context, network *config.Network) (map[string]*models.Account, error)
}

// Backend is the chain client used for deployments
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// ChainDialer connects to a network and checks it is the configured chain
type ChainDialer interface {
	Dial(ctx context.Context, network *config.Network) (Backend, error)
}

// ProxyDeployerFactory creates the proxy helper bound to a connected backend
type ProxyDeployerFactory interface {
	NewProxyDeployer(backend Backend, network *config.Network) deploy.ProxyDeployer
}

// Confirmer asks the user to confirm an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// FileWriter writes project scaffolding
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content string) error
	FileExists(ctx context.Context, path string) (bool, error)
	EnsureDirectory(ctx context.Context, path string) error
}
