package deploy

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/models"
)

const counterABI = `[{"type":"function","name":"count","inputs":[],"outputs":[{"type":"uint256"}],"stateMutability":"view"}]`

type fakeAccounts struct {
	accounts map[string]*models.Account
	err      error
	calls    int
}

func (f *fakeAccounts) NamedAccounts(ctx context.Context) (map[string]*models.Account, error) {
	f.calls++
	return f.accounts, f.err
}

type fakeArtifacts map[string]*models.Contract

func (f fakeArtifacts) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	c, ok := f[name]
	if !ok {
		return nil, &domain.ContractNotFoundErr{Name: name}
	}
	return c, nil
}

type fakeSaver struct {
	saved []*models.Deployment
	err   error
}

func (f *fakeSaver) SaveDeployment(ctx context.Context, d *models.Deployment) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, d)
	return nil
}

type fakeChain struct {
	id    int64
	calls int
}

func (f *fakeChain) ChainID(ctx context.Context) (*big.Int, error) {
	f.calls++
	return big.NewInt(f.id), nil
}

func newContract(name, bytecode string) *models.Contract {
	return &models.Contract{
		Name:   name,
		Source: "contracts/" + name + ".sol",
		Artifact: &models.Artifact{
			ContractName: name,
			ABI:          json.RawMessage(counterABI),
			Bytecode:     models.Bytecode{Object: bytecode},
		},
	}
}
