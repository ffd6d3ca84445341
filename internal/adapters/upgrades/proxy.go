package upgrades

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artspark/sparkdeploy/internal/deploy"
	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// DefaultInitializer is called on the proxy when no initializer is named
const DefaultInitializer = "initialize"

// ManifestRecorder persists proxies and implementations per chain
type ManifestRecorder interface {
	RecordProxy(ctx context.Context, chainID uint64, deployment *models.ProxyDeployment, implCode []byte) error
}

// Factory builds proxy deployers bound to a connected backend
type Factory struct {
	contracts usecase.ContractRepository
	manifests ManifestRecorder
	log       *slog.Logger
}

// NewFactory creates a new proxy deployer factory
func NewFactory(contracts usecase.ContractRepository, manifests ManifestRecorder, log *slog.Logger) *Factory {
	return &Factory{
		contracts: contracts,
		manifests: manifests,
		log:       log,
	}
}

// NewProxyDeployer returns a deployer for the network
func (f *Factory) NewProxyDeployer(backend usecase.Backend, network *config.Network) deploy.ProxyDeployer {
	return &Deployer{
		backend:   backend,
		contracts: f.contracts,
		manifests: f.manifests,
		network:   network,
		waiter:    NewWaiter(backend, network.Confirmations, network.PollInterval, f.log),
		log:       f.log,
	}
}

// Deployer deploys an implementation and an initialized proxy in front of it
type Deployer struct {
	backend   usecase.Backend
	contracts usecase.ContractRepository
	manifests ManifestRecorder
	network   *config.Network
	waiter    *Waiter
	log       *slog.Logger
}

// DeployProxy deploys the factory's contract as implementation, then a proxy
// whose constructor calls the initializer with args. Both transactions are
// awaited. Nothing is undone when the proxy step fails.
func (d *Deployer) DeployProxy(ctx context.Context, factory *deploy.Factory, args []any, opts deploy.ProxyOptions) (*models.ProxyDeployment, error) {
	signer := factory.Signer
	if !signer.CanSign() {
		return nil, fmt.Errorf("%w: deploying %s needs a signing account", domain.ErrAccountCannotSign, factory.Contract.Name)
	}

	kind := opts.Kind
	if kind == "" {
		var err error
		if kind, err = models.ParseProxyKind(d.network.ProxyKind); err != nil {
			return nil, err
		}
	}

	// Resolve everything that can fail locally before broadcasting
	implCode, err := factory.Contract.Artifact.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", factory.Contract.Name, err)
	}
	initData, err := encodeInitializer(factory, opts.Initializer, args)
	if err != nil {
		return nil, err
	}
	proxyFactory, err := d.proxyFactory(ctx, kind)
	if err != nil {
		return nil, err
	}
	proxyCode, err := proxyFactory.Contract.Artifact.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", proxyFactory.Contract.Name, err)
	}

	chainID, err := d.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(signer.Key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	implAddr, implTx, _, err := bind.DeployContract(auth, *factory.ABI, implCode, d.backend)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s implementation: %w", factory.Contract.Name, err)
	}
	d.log.Info("deploying implementation", "contract", factory.Contract.Name, "tx", implTx.Hash().Hex())
	if _, err := d.waiter.Wait(ctx, implTx); err != nil {
		return nil, fmt.Errorf("implementation of %s: %w", factory.Contract.Name, err)
	}

	var params []any
	switch kind {
	case models.ProxyKindUUPS:
		params = []any{implAddr, initData}
	default:
		params = []any{implAddr, signer.Address, initData}
	}

	proxyAddr, proxyTx, _, err := bind.DeployContract(auth, *proxyFactory.ABI, proxyCode, d.backend, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s for %s: %w", proxyFactory.Contract.Name, factory.Contract.Name, err)
	}
	d.log.Info("deploying proxy", "kind", kind, "implementation", implAddr.Hex(), "tx", proxyTx.Hash().Hex())
	receipt, err := d.waiter.Wait(ctx, proxyTx)
	if err != nil {
		return nil, fmt.Errorf("proxy of %s: %w", factory.Contract.Name, err)
	}

	deployment := &models.ProxyDeployment{
		Kind:                 kind,
		Address:              proxyAddr,
		Implementation:       implAddr,
		Deployer:             signer.Address,
		TxHash:               proxyTx.Hash(),
		ImplementationTxHash: implTx.Hash(),
		Receipt:              receipt,
		Args:                 args,
	}

	if d.manifests != nil {
		if err := d.manifests.RecordProxy(ctx, chainID.Uint64(), deployment, implCode); err != nil {
			return nil, fmt.Errorf("failed to update upgrades manifest: %w", err)
		}
	}

	return deployment, nil
}

func (d *Deployer) proxyFactory(ctx context.Context, kind models.ProxyKind) (*deploy.Factory, error) {
	contract, err := d.contracts.GetContract(ctx, kind.ProxyContractName())
	if err != nil {
		return nil, fmt.Errorf("%s proxy artifact: %w", kind, err)
	}
	parsed, err := contract.ParseABI()
	if err != nil {
		return nil, err
	}
	return &deploy.Factory{Contract: contract, ABI: parsed}, nil
}

// encodeInitializer packs the initializer call. A contract without the
// initializer can still be proxied when no arguments are given.
func encodeInitializer(factory *deploy.Factory, initializer string, args []any) ([]byte, error) {
	if initializer == "" {
		initializer = DefaultInitializer
	}
	method, ok := factory.ABI.Methods[initializer]
	if !ok {
		if len(args) == 0 {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("contract %s has no %s function", factory.Contract.Name, initializer)
	}

	coerced, err := CoerceArgs(method.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", factory.Contract.Name, initializer, err)
	}
	data, err := factory.ABI.Pack(initializer, coerced...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", factory.Contract.Name, initializer, err)
	}
	return data, nil
}

var (
	_ deploy.ProxyDeployer         = (*Deployer)(nil)
	_ usecase.ProxyDeployerFactory = (*Factory)(nil)
)
