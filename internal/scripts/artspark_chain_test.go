package scripts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artspark/sparkdeploy/internal/adapters/repository/contracts"
	"github.com/artspark/sparkdeploy/internal/adapters/repository/deployments"
	"github.com/artspark/sparkdeploy/internal/adapters/repository/manifests"
	"github.com/artspark/sparkdeploy/internal/adapters/upgrades"
	"github.com/artspark/sparkdeploy/internal/config"
	domainconfig "github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/scripts"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	initCode = "0x6001600c60003960016000f300"

	artsparkArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "Artspark",
  "sourceName": "contracts/Artspark.sol",
  "abi": [{"type":"function","name":"initialize","inputs":[{"name":"name_","type":"string"},{"name":"symbol_","type":"string"},{"name":"ratio","type":"uint32"},{"name":"reserveInit","type":"uint256"},{"name":"signer_","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}],
  "bytecode": "%s",
  "deployedBytecode": "0x00",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`

	proxyArtifact = `{
  "_format": "hh-sol-artifact-1",
  "contractName": "TransparentUpgradeableProxy",
  "sourceName": "@openzeppelin/contracts/proxy/transparent/TransparentUpgradeableProxy.sol",
  "abi": [{"type":"constructor","inputs":[{"name":"_logic","type":"address"},{"name":"initialOwner","type":"address"},{"name":"_data","type":"bytes"}],"stateMutability":"payable"}],
  "bytecode": "%s",
  "deployedBytecode": "0x00",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`
)

// simDialer hands out the simulated chain. The embedded interface hides the
// client's Close so repeated runs share one connection.
type simDialer struct {
	usecase.Backend
}

func (d simDialer) Dial(ctx context.Context, network *domainconfig.Network) (usecase.Backend, error) {
	return d, nil
}

type chainProject struct {
	cfg     *domainconfig.RuntimeConfig
	sim     *simulated.Backend
	deploy  *usecase.RunDeploy
	records *deployments.FileRepository
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newChainProject(t *testing.T) *chainProject {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "artifacts/contracts/Artspark.sol/Artspark.json"),
		fmt.Sprintf(artsparkArtifact, initCode))
	writeFile(t, filepath.Join(root, "artifacts/@openzeppelin/contracts/proxy/transparent/TransparentUpgradeableProxy.sol/TransparentUpgradeableProxy.json"),
		fmt.Sprintf(proxyArtifact, initCode))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	deployer := crypto.PubkeyToAddress(key.PublicKey)

	sim := simulated.NewBackend(types.GenesisAlloc{
		deployer: {Balance: new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))},
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sim.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = sim.Close()
	})

	cfg := &domainconfig.RuntimeConfig{
		ProjectRoot:    root,
		ArtifactsDir:   filepath.Join(root, "artifacts"),
		DeploymentsDir: filepath.Join(root, "deployments"),
		ManifestsDir:   filepath.Join(root, ".openzeppelin"),
		Network: &domainconfig.Network{
			Name:          "localhost",
			Confirmations: 1,
			PollInterval:  10 * time.Millisecond,
		},
		NonInteractive: true,
		Project: &domainconfig.ProjectConfig{
			Accounts: map[string]domainconfig.AccountConfig{
				"deployer": {Type: domainconfig.SenderTypePrivateKey, PrivateKey: hexutil.Encode(crypto.FromECDSA(key))},
			},
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	artifacts := contracts.NewRepository(cfg, log)
	records := deployments.NewFileRepository(cfg)
	registry, err := scripts.NewRegistry()
	require.NoError(t, err)

	return &chainProject{
		cfg:     cfg,
		sim:     sim,
		records: records,
		deploy: usecase.NewRunDeploy(
			cfg,
			registry,
			config.NewAccountResolver(cfg),
			artifacts,
			records,
			simDialer{Backend: sim.Client()},
			upgrades.NewFactory(artifacts, manifests.NewFileStore(cfg), log),
			nil,
			usecase.NopProgress{},
			log,
		),
	}
}

func TestArtspark_DeploysOnChain(t *testing.T) {
	p := newChainProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := p.deploy.Run(ctx, usecase.RunDeployParams{Tags: []string{"Artspark"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Artspark"}, result.Scripts)
	assert.Equal(t, uint64(1337), result.ChainID)
	require.Len(t, result.Deployments, 1)

	record, err := p.records.GetDeployment(ctx, "localhost", "Artspark")
	require.NoError(t, err)
	assert.Equal(t, 1, record.NumDeployments)
	assert.Equal(t, uint64(1337), record.ChainID)
	assert.Equal(t, result.Deployments[0].Address, record.Address)
	assert.NotEqual(t, record.Address, record.Implementation)
	var abiEntries []json.RawMessage
	require.NoError(t, json.Unmarshal(record.ABI, &abiEntries))
	assert.NotEmpty(t, abiEntries)
	assert.Equal(t, models.ProxyKindTransparent, record.ProxyKind)
	assert.Equal(t, []any{"Artspark", "ARTS", "500000", "10000000000000", common.HexToAddress(scripts.SignerAddress).Hex()}, record.Args)
	require.NotNil(t, record.Receipt)
	assert.Equal(t, uint64(types.ReceiptStatusSuccessful), record.Receipt.Status)

	client := p.sim.Client()
	code, err := client.CodeAt(ctx, common.HexToAddress(record.Address), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	// the proxy constructor carries the encoded initialize call
	tx, _, err := client.TransactionByHash(ctx, common.HexToHash(record.TransactionHash))
	require.NoError(t, err)
	proxyABI, err := abi.JSON(bytesReader(fmt.Sprintf(proxyArtifact, initCode), "abi"))
	require.NoError(t, err)
	ctorArgs, err := proxyABI.Constructor.Inputs.Unpack(tx.Data()[len(hexutil.MustDecode(initCode)):])
	require.NoError(t, err)
	require.Len(t, ctorArgs, 3)
	assert.Equal(t, common.HexToAddress(record.Implementation), ctorArgs[0])

	implABI, err := abi.JSON(bytesReader(fmt.Sprintf(artsparkArtifact, initCode), "abi"))
	require.NoError(t, err)
	data := ctorArgs[2].([]byte)
	method, err := implABI.MethodById(data[:4])
	require.NoError(t, err)
	assert.Equal(t, "initialize", method.Name)
	values, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, "Artspark", values[0])
	assert.Equal(t, "ARTS", values[1])
	assert.Equal(t, uint32(500000), values[2])
	assert.Equal(t, 0, big.NewInt(10000000000000).Cmp(values[3].(*big.Int)))
	assert.Equal(t, common.HexToAddress(scripts.SignerAddress), values[4])

	_, err = os.Stat(filepath.Join(p.cfg.ManifestsDir, manifests.FileName(1337)))
	assert.NoError(t, err)
}

func TestArtspark_RedeployReplacesRecord(t *testing.T) {
	p := newChainProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := p.deploy.Run(ctx, usecase.RunDeployParams{})
	require.NoError(t, err)
	first, err := p.records.GetDeployment(ctx, "localhost", "Artspark")
	require.NoError(t, err)

	_, err = p.deploy.Run(ctx, usecase.RunDeployParams{})
	require.NoError(t, err)
	second, err := p.records.GetDeployment(ctx, "localhost", "Artspark")
	require.NoError(t, err)

	assert.Equal(t, 2, second.NumDeployments)
	assert.NotEqual(t, first.Address, second.Address)

	all, err := p.records.ListDeployments(ctx, "localhost")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	data, err := os.ReadFile(filepath.Join(p.cfg.ManifestsDir, manifests.FileName(1337)))
	require.NoError(t, err)
	var manifest models.UpgradesManifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Len(t, manifest.Proxies, 2)
}

// bytesReader extracts one field of a JSON document as a reader
func bytesReader(doc, field string) io.Reader {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		panic(err)
	}
	return bytes.NewReader(fields[field])
}
