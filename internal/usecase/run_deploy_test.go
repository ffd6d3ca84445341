package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/artspark/sparkdeploy/internal/deploy"
	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/scripts"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const artsparkABI = `[{"type":"function","name":"initialize","inputs":[{"name":"name_","type":"string"},{"name":"symbol_","type":"string"},{"name":"ratio","type":"uint32"},{"name":"reserveInit","type":"uint256"},{"name":"signer_","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}]`

var (
	proxyAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	implAddress  = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	proxyTxHash  = common.HexToHash("0x01")
)

type runDeployFixture struct {
	cfg       *config.RuntimeConfig
	accounts  *MockAccountResolver
	contracts *MockContractRepository
	repo      *MockDeploymentRepository
	proxies   *MockProxyDeployer
	confirmer *MockConfirmer
	dialer    *stubDialer
	progress  *MockProgressSink
	deployer  *models.Account
}

func newRunDeployFixture(t *testing.T) *runDeployFixture {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	deployer := &models.Account{Name: "deployer", Address: crypto.PubkeyToAddress(key.PublicKey), Key: key}

	return &runDeployFixture{
		cfg: &config.RuntimeConfig{
			Network: &config.Network{Name: "localhost", ChainID: 31337, Confirmations: 1},
		},
		accounts:  new(MockAccountResolver),
		contracts: new(MockContractRepository),
		repo:      new(MockDeploymentRepository),
		proxies:   new(MockProxyDeployer),
		confirmer: new(MockConfirmer),
		dialer: &stubDialer{backend: &fakeBackend{
			chainID:  31337,
			balances: map[common.Address]*big.Int{deployer.Address: big.NewInt(1e18)},
		}},
		progress: &MockProgressSink{},
		deployer: deployer,
	}
}

func (f *runDeployFixture) useCase(t *testing.T) *usecase.RunDeploy {
	t.Helper()
	registry, err := scripts.NewRegistry()
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewRunDeploy(f.cfg, registry, f.accounts, f.contracts, f.repo, f.dialer,
		&stubProxyFactory{deployer: f.proxies}, f.confirmer, f.progress, log)
}

func artsparkContract() *models.Contract {
	return &models.Contract{
		Name:   "Artspark",
		Source: "contracts/Artspark.sol",
		Artifact: &models.Artifact{
			Format:           models.HardhatArtifactFormat,
			ContractName:     "Artspark",
			SourceName:       "contracts/Artspark.sol",
			ABI:              json.RawMessage(artsparkABI),
			Bytecode:         models.Bytecode{Object: "0x6001600c60003960016000f300"},
			DeployedBytecode: models.Bytecode{Object: "0x00"},
		},
	}
}

func TestRunDeploy(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys Artspark and saves the proxy record", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.accounts.On("NamedAccounts", mock.Anything, f.cfg.Network).
			Return(map[string]*models.Account{"deployer": f.deployer}, nil).Once()
		f.contracts.On("GetContract", mock.Anything, "Artspark").Return(artsparkContract(), nil)
		f.proxies.On("DeployProxy", mock.Anything, mock.Anything, mock.Anything, deploy.ProxyOptions{}).
			Return(&models.ProxyDeployment{
				Kind:           models.ProxyKindTransparent,
				Address:        proxyAddress,
				Implementation: implAddress,
				Deployer:       f.deployer.Address,
				TxHash:         proxyTxHash,
				Receipt:        &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: proxyTxHash, BlockNumber: big.NewInt(3)},
				Args:           scripts.Artspark{}.InitializerArgs(),
			}, nil).Once()
		f.repo.On("SaveDeployment", mock.Anything, mock.MatchedBy(func(d *models.Deployment) bool {
			return d.Name == "Artspark" && d.Network == "localhost" && d.ChainID == 31337
		})).Return(nil).Once()

		result, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{Tags: []string{"Artspark"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"Artspark"}, result.Scripts)
		assert.Equal(t, uint64(31337), result.ChainID)
		require.Len(t, result.Deployments, 1)

		saved := result.Deployments[0]
		assert.Equal(t, proxyAddress.Hex(), saved.Address)
		assert.Equal(t, implAddress.Hex(), saved.Implementation)
		assert.Equal(t, proxyTxHash.Hex(), saved.TransactionHash)
		assert.JSONEq(t, artsparkABI, string(saved.ABI))
		assert.Equal(t, []any{"Artspark", "ARTS", "500000", "10000000000000", common.HexToAddress(scripts.SignerAddress).Hex()}, saved.Args)

		// The factory passed to the proxy helper signs with the deployer
		factory := f.proxies.Calls[0].Arguments.Get(1).(*deploy.Factory)
		assert.Equal(t, f.deployer, factory.Signer)
		assert.Equal(t, "Artspark", factory.Contract.Name)

		assert.True(t, f.dialer.backend.closed)
		assert.Empty(t, f.progress.infos)
		assert.Equal(t, usecase.StageCompleted, f.progress.events[len(f.progress.events)-1].Stage)
		f.repo.AssertExpectations(t)
		f.accounts.AssertExpectations(t)
	})

	t.Run("no network selected", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.cfg.Network = nil

		_, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{})

		require.Error(t, err)
		assert.Equal(t, 0, f.dialer.dialed)
	})

	t.Run("unknown tag selects nothing", func(t *testing.T) {
		f := newRunDeployFixture(t)

		_, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{Tags: []string{"Marketplace"}})

		require.ErrorIs(t, err, domain.ErrNoScripts)
		assert.Equal(t, 0, f.dialer.dialed)
	})

	t.Run("live network requires --yes when non-interactive", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.cfg.Network.Live = true
		f.cfg.NonInteractive = true

		_, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--yes")
		assert.Equal(t, 0, f.dialer.dialed)
	})

	t.Run("live network declined at the prompt", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.cfg.Network.Live = true
		f.confirmer.On("Confirm", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()

		_, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{})

		require.ErrorIs(t, err, domain.ErrAborted)
		assert.Equal(t, 0, f.dialer.dialed)
		f.confirmer.AssertExpectations(t)
	})

	t.Run("missing artifact persists nothing", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.accounts.On("NamedAccounts", mock.Anything, f.cfg.Network).
			Return(map[string]*models.Account{"deployer": f.deployer}, nil)
		f.contracts.On("GetContract", mock.Anything, "Artspark").
			Return(nil, &domain.ContractNotFoundErr{Name: "Artspark"})

		result, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{})

		require.ErrorIs(t, err, domain.ErrContractNotFound)
		assert.Contains(t, err.Error(), "deploy script Artspark failed")
		assert.Empty(t, result.Deployments)
		f.repo.AssertNotCalled(t, "SaveDeployment", mock.Anything, mock.Anything)
		f.proxies.AssertNotCalled(t, "DeployProxy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing deployer account", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.accounts.On("NamedAccounts", mock.Anything, f.cfg.Network).
			Return(map[string]*models.Account{}, nil)

		_, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{})

		require.ErrorIs(t, err, domain.ErrAccountNotFound)
		f.contracts.AssertNotCalled(t, "GetContract", mock.Anything, mock.Anything)
	})

	t.Run("warns when the deployer has no funds", func(t *testing.T) {
		f := newRunDeployFixture(t)
		f.dialer.backend.balances = nil
		f.accounts.On("NamedAccounts", mock.Anything, f.cfg.Network).
			Return(map[string]*models.Account{"deployer": f.deployer}, nil)
		f.contracts.On("GetContract", mock.Anything, "Artspark").Return(nil, domain.ErrContractNotFound)

		_, err := f.useCase(t).Run(ctx, usecase.RunDeployParams{})

		require.Error(t, err)
		require.Len(t, f.progress.infos, 1)
		assert.Contains(t, f.progress.infos[0], "no funds")
	})
}
