package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DefaultSigner is the named account contract factories sign with unless
// connected to another account.
const DefaultSigner = "deployer"

// AccountSource resolves named accounts for the selected network
type AccountSource interface {
	NamedAccounts(ctx context.Context) (map[string]*models.Account, error)
}

// ArtifactSource looks up compiled contracts by name
type ArtifactSource interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
}

// DeploymentSaver persists deployment records for a network
type DeploymentSaver interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
}

// ChainIDReader reads the chain id of the connected network
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// ProxyOptions tunes DeployProxy. Zero values take the network defaults.
type ProxyOptions struct {
	Kind        models.ProxyKind
	Initializer string // defaults to "initialize"
}

// ProxyDeployer deploys an implementation behind an upgradeable proxy and
// waits for confirmation.
type ProxyDeployer interface {
	DeployProxy(ctx context.Context, factory *Factory, args []any, opts ProxyOptions) (*models.ProxyDeployment, error)
}

// Factory is a compiled contract ready for deployment by a signer
type Factory struct {
	Contract *models.Contract
	ABI      *abi.ABI
	Signer   *models.Account
}

// Connect returns a copy of the factory that signs with the given account
func (f *Factory) Connect(signer *models.Account) *Factory {
	clone := *f
	clone.Signer = signer
	return &clone
}

// EnvironmentOptions holds the dependencies of an Environment
type EnvironmentOptions struct {
	Network   *config.Network
	Accounts  AccountSource
	Artifacts ArtifactSource
	Saver     DeploymentSaver
	Upgrades  ProxyDeployer
	Chain     ChainIDReader
	Log       *slog.Logger
}

// Environment is what a deploy script sees: named accounts, chain id,
// contract artifacts, the proxy helper and the deployment registry.
type Environment struct {
	network   *config.Network
	accounts  AccountSource
	artifacts ArtifactSource
	saver     DeploymentSaver
	upgrades  ProxyDeployer
	chain     ChainIDReader
	log       *slog.Logger

	chainID *big.Int
	saved   []*models.Deployment
}

// NewEnvironment creates a script environment
func NewEnvironment(opts EnvironmentOptions) *Environment {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Environment{
		network:   opts.Network,
		accounts:  opts.Accounts,
		artifacts: opts.Artifacts,
		saver:     opts.Saver,
		upgrades:  opts.Upgrades,
		chain:     opts.Chain,
		log:       log,
	}
}

// Network returns the network the scripts run against
func (e *Environment) Network() *config.Network {
	return e.network
}

// Log returns the environment logger
func (e *Environment) Log() *slog.Logger {
	return e.log
}

// NamedAccounts returns all named accounts keyed by alias
func (e *Environment) NamedAccounts(ctx context.Context) (map[string]*models.Account, error) {
	return e.accounts.NamedAccounts(ctx)
}

// NamedAccount resolves a single named account
func (e *Environment) NamedAccount(ctx context.Context, name string) (*models.Account, error) {
	accounts, err := e.accounts.NamedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, name)
	}
	return account, nil
}

// ChainID returns the chain id of the connected network. The value is read
// once per environment.
func (e *Environment) ChainID(ctx context.Context) (*big.Int, error) {
	if e.chainID != nil {
		return new(big.Int).Set(e.chainID), nil
	}
	id, err := e.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	e.chainID = id
	return new(big.Int).Set(id), nil
}

// ContractFactory resolves a compiled contract by name. The factory signs with
// the deployer account when one is configured.
func (e *Environment) ContractFactory(ctx context.Context, name string) (*Factory, error) {
	contract, err := e.artifacts.GetContract(ctx, name)
	if err != nil {
		return nil, err
	}
	if contract.Artifact.Bytecode.IsEmpty() {
		return nil, fmt.Errorf("contract %s has no bytecode (abstract contract or interface?)", contract.Name)
	}

	parsed, err := contract.ParseABI()
	if err != nil {
		return nil, err
	}

	factory := &Factory{Contract: contract, ABI: parsed}

	accounts, err := e.accounts.NamedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if signer, ok := accounts[DefaultSigner]; ok && signer.CanSign() {
		factory.Signer = signer
	}

	return factory, nil
}

// ExtendedArtifact returns the ABI and bytecode metadata of a contract
func (e *Environment) ExtendedArtifact(ctx context.Context, name string) (*models.ExtendedArtifact, error) {
	contract, err := e.artifacts.GetContract(ctx, name)
	if err != nil {
		return nil, err
	}
	return contract.Extended(), nil
}

// Upgrades returns the upgradeable proxy helper
func (e *Environment) Upgrades() ProxyDeployer {
	return e.upgrades
}

// Save persists a deployment record under a logical name, replacing any
// previous record with that name on this network.
func (e *Environment) Save(ctx context.Context, name string, deployment *models.Deployment) error {
	if name == "" {
		return fmt.Errorf("%w: empty deployment name", domain.ErrInvalidDeployment)
	}
	chainID, err := e.ChainID(ctx)
	if err != nil {
		return err
	}

	deployment.Name = name
	deployment.Network = e.network.Name
	deployment.ChainID = chainID.Uint64()

	if err := e.saver.SaveDeployment(ctx, deployment); err != nil {
		return fmt.Errorf("failed to save deployment %s: %w", name, err)
	}

	e.log.Debug("saved deployment", "name", name, "address", deployment.Address, "network", e.network.Name)
	e.saved = append(e.saved, deployment)
	return nil
}

// Saved returns the records saved through this environment, in order
func (e *Environment) Saved() []*models.Deployment {
	return e.saved
}
