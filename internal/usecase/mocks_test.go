package usecase_test

import (
	"context"
	"math/big"

	"github.com/artspark/sparkdeploy/internal/deploy"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error) {
	args := m.Called(ctx, network, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListNetworks(ctx context.Context) ([]models.RegistryNetwork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RegistryNetwork), args.Error(1)
}

func (m *MockDeploymentRepository) DeleteDeployment(ctx context.Context, network, name string) error {
	args := m.Called(ctx, network, name)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

// MockAccountResolver is a mock implementation of AccountResolver
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) NamedAccounts(ctx context.Context, network *config.Network) (map[string]*models.Account, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Account), args.Error(1)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// MockProxyDeployer records DeployProxy calls
type MockProxyDeployer struct {
	mock.Mock
}

func (m *MockProxyDeployer) DeployProxy(ctx context.Context, factory *deploy.Factory, args []any, opts deploy.ProxyOptions) (*models.ProxyDeployment, error) {
	ret := m.Called(ctx, factory, args, opts)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.ProxyDeployment), ret.Error(1)
}

// stubProxyFactory hands out a fixed proxy deployer
type stubProxyFactory struct {
	deployer deploy.ProxyDeployer
}

func (f *stubProxyFactory) NewProxyDeployer(usecase.Backend, *config.Network) deploy.ProxyDeployer {
	return f.deployer
}

// fakeBackend implements the few Backend methods the use cases call. Anything
// else panics through the nil embedded interface.
type fakeBackend struct {
	usecase.Backend
	chainID  uint64
	balances map[common.Address]*big.Int
	code     map[common.Address][]byte
	closed   bool
}

func (b *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(b.chainID), nil
}

func (b *fakeBackend) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	if bal, ok := b.balances[account]; ok {
		return bal, nil
	}
	return new(big.Int), nil
}

func (b *fakeBackend) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	return b.code[account], nil
}

func (b *fakeBackend) Close() {
	b.closed = true
}

// stubDialer returns a fixed backend
type stubDialer struct {
	backend *fakeBackend
	err     error
	dialed  int
}

func (d *stubDialer) Dial(context.Context, *config.Network) (usecase.Backend, error) {
	d.dialed++
	if d.err != nil {
		return nil, d.err
	}
	return d.backend, nil
}

// MockProgressSink is a mock implementation of ProgressSink
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}
