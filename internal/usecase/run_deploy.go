package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/artspark/sparkdeploy/internal/deploy"
	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/samber/lo"
)

// Deploy stages reported through the progress sink
const (
	StageConnecting = "connecting"
	StageDeploying  = "deploying"
	StageCompleted  = "completed"
)

// RunDeployParams contains parameters for a deploy run
type RunDeployParams struct {
	Tags []string
}

// RunDeployResult contains the outcome of a deploy run
type RunDeployResult struct {
	Network     *config.Network
	ChainID     uint64
	Scripts     []string
	Deployments []*models.Deployment
}

// RunDeploy runs the selected deploy scripts against the configured network
type RunDeploy struct {
	config      *config.RuntimeConfig
	scripts     *deploy.Registry
	accounts    AccountResolver
	contracts   ContractRepository
	deployments DeploymentRepository
	dialer      ChainDialer
	proxies     ProxyDeployerFactory
	confirmer   Confirmer
	progress    ProgressSink
	log         *slog.Logger
}

// NewRunDeploy creates a new RunDeploy use case
func NewRunDeploy(
	cfg *config.RuntimeConfig,
	scripts *deploy.Registry,
	accounts AccountResolver,
	contracts ContractRepository,
	deployments DeploymentRepository,
	dialer ChainDialer,
	proxies ProxyDeployerFactory,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *RunDeploy {
	return &RunDeploy{
		config:      cfg,
		scripts:     scripts,
		accounts:    accounts,
		contracts:   contracts,
		deployments: deployments,
		dialer:      dialer,
		proxies:     proxies,
		confirmer:   confirmer,
		progress:    progress,
		log:         log,
	}
}

// Run executes the use case
func (uc *RunDeploy) Run(ctx context.Context, params RunDeployParams) (*RunDeployResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected: configure one under [networks] in sparkdeploy.toml")
	}

	selected := uc.scripts.Select(params.Tags)
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no script has any of the tags %s", domain.ErrNoScripts, strings.Join(params.Tags, ", "))
	}

	if err := uc.confirmLive(ctx, network, selected); err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConnecting,
		Message: fmt.Sprintf("Connecting to %s", network.Name),
		Spinner: true,
	})

	backend, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}
	if closer, ok := backend.(interface{ Close() }); ok {
		defer closer.Close()
	}

	accounts := &networkAccounts{resolver: uc.accounts, network: network}
	uc.checkDeployerBalance(ctx, backend, accounts)

	env := deploy.NewEnvironment(deploy.EnvironmentOptions{
		Network:   network,
		Accounts:  accounts,
		Artifacts: uc.contracts,
		Saver:     uc.deployments,
		Upgrades:  uc.proxies.NewProxyDeployer(backend, network),
		Chain:     backend,
		Log:       uc.log,
	})

	result := &RunDeployResult{
		Network: network,
		Scripts: lo.Map(selected, func(s deploy.Script, _ int) string { return s.Name() }),
	}

	runner := deploy.NewRunner(uc.log)
	for i, script := range selected {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageDeploying,
			Current: i + 1,
			Total:   len(selected),
			Message: fmt.Sprintf("Running %s", script.Name()),
			Spinner: true,
		})
		if err := runner.Run(ctx, env, []deploy.Script{script}); err != nil {
			result.Deployments = env.Saved()
			return result, err
		}
	}

	chainID, err := env.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	result.ChainID = chainID.Uint64()
	result.Deployments = env.Saved()

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Current: len(selected),
		Total:   len(selected),
		Message: "Deployment complete",
	})

	return result, nil
}

func (uc *RunDeploy) confirmLive(ctx context.Context, network *config.Network, selected []deploy.Script) error {
	if !network.Live || uc.config.Yes {
		return nil
	}
	if uc.config.NonInteractive {
		return fmt.Errorf("network %s is live: pass --yes to deploy without confirmation", network.Name)
	}

	names := lo.Map(selected, func(s deploy.Script, _ int) string { return s.Name() })
	ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %s to live network %s", strings.Join(names, ", "), network.Name))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

// checkDeployerBalance warns when the deployer cannot pay for gas. Account
// errors are left for the scripts to report.
func (uc *RunDeploy) checkDeployerBalance(ctx context.Context, backend Backend, accounts *networkAccounts) {
	named, err := accounts.NamedAccounts(ctx)
	if err != nil {
		return
	}
	deployer, ok := named[deploy.DefaultSigner]
	if !ok {
		return
	}
	balance, err := backend.BalanceAt(ctx, deployer.Address, nil)
	if err != nil {
		uc.log.Debug("could not read deployer balance", "address", deployer.Address, "error", err)
		return
	}
	if balance.Sign() == 0 {
		uc.progress.Info(fmt.Sprintf("Warning: deployer %s has no funds on %s", deployer.Address.Hex(), uc.config.Network.Name))
	}
}

// networkAccounts binds an AccountResolver to one network and resolves once
type networkAccounts struct {
	resolver AccountResolver
	network  *config.Network

	once     sync.Once
	accounts map[string]*models.Account
	err      error
}

func (n *networkAccounts) NamedAccounts(ctx context.Context) (map[string]*models.Account, error) {
	n.once.Do(func() {
		n.accounts, n.err = n.resolver.NamedAccounts(ctx, n.network)
	})
	return n.accounts, n.err
}
