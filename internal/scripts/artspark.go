package scripts

import (
	"context"
	"math/big"

	"github.com/artspark/sparkdeploy/internal/deploy"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// Artspark initializer parameters
const (
	ArtsparkContract = "Artspark"
	ArtsparkName     = "Artspark"
	ArtsparkSymbol   = "ARTS"

	// LinearCurveRatio is the bonding-curve reserve ratio for a linear curve
	LinearCurveRatio = 500000

	// ReserveInit is the initial reserve, in wei
	ReserveInit = 10000000000000

	// SignerAddress is the account allowed to sign mint authorisations
	SignerAddress = "0x1753a6d1617cec011a1032f3ea6172e92679d9bd"
)

// Artspark deploys the Artspark NFT behind an upgradeable proxy and records
// the proxy address under "Artspark".
type Artspark struct{}

func (Artspark) Name() string {
	return "Artspark"
}

func (Artspark) Tags() []string {
	return []string{"Artspark"}
}

// InitializerArgs returns the arguments passed to Artspark.initialize
func (Artspark) InitializerArgs() []any {
	return []any{
		ArtsparkName,
		ArtsparkSymbol,
		big.NewInt(LinearCurveRatio),
		big.NewInt(ReserveInit),
		common.HexToAddress(SignerAddress),
	}
}

func (a Artspark) Run(ctx context.Context, env *deploy.Environment) error {
	deployer, err := env.NamedAccount(ctx, deploy.DefaultSigner)
	if err != nil {
		return err
	}

	factory, err := env.ContractFactory(ctx, ArtsparkContract)
	if err != nil {
		return err
	}

	proxy, err := env.Upgrades().DeployProxy(ctx, factory.Connect(deployer), a.InitializerArgs(), deploy.ProxyOptions{})
	if err != nil {
		return err
	}
	env.Log().Info("deployed Artspark proxy", "address", proxy.Address.Hex(), "implementation", proxy.Implementation.Hex())

	artifact, err := env.ExtendedArtifact(ctx, ArtsparkContract)
	if err != nil {
		return err
	}

	record := models.NewDeployment(proxy.Address, artifact)
	record.TransactionHash = proxy.TxHash.Hex()
	record.Receipt = models.NewReceipt(proxy.Receipt, proxy.Deployer, nil)
	record.Args = models.NormalizeArgs(proxy.Args)
	record.Implementation = proxy.Implementation.Hex()
	record.ProxyKind = proxy.Kind

	return env.Save(ctx, ArtsparkContract, record)
}
