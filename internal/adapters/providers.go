package adapters

import (
	"github.com/artspark/sparkdeploy/internal/adapters/blockchain"
	"github.com/artspark/sparkdeploy/internal/adapters/interactive"
	"github.com/artspark/sparkdeploy/internal/adapters/repository/contracts"
	"github.com/artspark/sparkdeploy/internal/adapters/repository/deployments"
	"github.com/artspark/sparkdeploy/internal/adapters/repository/manifests"
	"github.com/artspark/sparkdeploy/internal/adapters/upgrades"
	"github.com/artspark/sparkdeploy/internal/config"
	"github.com/artspark/sparkdeploy/internal/scripts"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/google/wire"
)

// RepositorySet provides filesystem-backed stores
var RepositorySet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),

	manifests.NewFileStore,
	wire.Bind(new(upgrades.ManifestRecorder), new(*manifests.FileStore)),
)

// BlockchainSet provides chain access and the proxy helper
var BlockchainSet = wire.NewSet(
	blockchain.NewDialer,
	wire.Bind(new(usecase.ChainDialer), new(*blockchain.Dialer)),

	upgrades.NewFactory,
	wire.Bind(new(usecase.ProxyDeployerFactory), new(*upgrades.Factory)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.NewAccountResolver,
	wire.Bind(new(usecase.AccountResolver), new(*config.AccountResolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.Prompter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	scripts.NewRegistry,

	RepositorySet,
	BlockchainSet,
	ConfigSet,
	InteractiveSet,
)
