package manifests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/crypto"
)

// ManifestVersion is stamped on new manifests. The file uses the upgrades
// plugins' file names and field names, but it only records proxy and
// implementation addresses: implementation entries carry no storage layout,
// so it cannot back upgrade safety checks.
const ManifestVersion = "3.2"

// wellKnownChains maps chain ids to the manifest file names the upgrades
// plugins use. Anything else is stored as unknown-<chainId>.json.
var wellKnownChains = map[uint64]string{
	1:        "mainnet",
	10:       "optimism",
	56:       "bsc",
	97:       "bsc-testnet",
	137:      "polygon",
	8453:     "base",
	17000:    "holesky",
	42161:    "arbitrum-one",
	43113:    "avalanche-fuji",
	43114:    "avalanche",
	80002:    "polygon-amoy",
	84532:    "base-sepolia",
	421614:   "arbitrum-sepolia",
	11155111: "sepolia",
	11155420: "optimism-sepolia",
}

// FileName returns the manifest file name of a chain
func FileName(chainID uint64) string {
	if name, ok := wellKnownChains[chainID]; ok {
		return name + ".json"
	}
	return fmt.Sprintf("unknown-%d.json", chainID)
}

// FileStore keeps the proxy and implementation manifest per chain
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store writing to the manifests directory
func NewFileStore(cfg *config.RuntimeConfig) *FileStore {
	return &FileStore{dir: cfg.ManifestsDir}
}

// Load reads the manifest of a chain. A missing file is an empty manifest.
func (s *FileStore) Load(ctx context.Context, chainID uint64) (*models.UpgradesManifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(chainID)
}

// RecordProxy adds a proxy and its implementation, replacing entries with the
// same proxy address. An implementation already listed under the same
// bytecode hash keeps its other fields, layout included.
func (s *FileStore) RecordProxy(ctx context.Context, chainID uint64, deployment *models.ProxyDeployment, implCode []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	manifest, err := s.load(chainID)
	if err != nil {
		return err
	}

	proxies := manifest.Proxies[:0]
	for _, p := range manifest.Proxies {
		if !strings.EqualFold(p.Address, deployment.Address.Hex()) {
			proxies = append(proxies, p)
		}
	}
	manifest.Proxies = append(proxies, models.ManifestProxy{
		Address: deployment.Address.Hex(),
		TxHash:  deployment.TxHash.Hex(),
		Kind:    deployment.Kind,
	})

	key := strings.TrimPrefix(crypto.Keccak256Hash(implCode).Hex(), "0x")
	impl := manifest.Impls[key]
	impl.Address = deployment.Implementation.Hex()
	impl.TxHash = deployment.ImplementationTxHash.Hex()
	manifest.Impls[key] = impl

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifests directory: %w", err)
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, FileName(chainID))
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func (s *FileStore) load(chainID uint64) (*models.UpgradesManifest, error) {
	manifest := &models.UpgradesManifest{
		ManifestVersion: ManifestVersion,
		Impls:           make(map[string]models.ManifestImpl),
	}

	data, err := os.ReadFile(filepath.Join(s.dir, FileName(chainID)))
	if errors.Is(err, os.ErrNotExist) {
		return manifest, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", FileName(chainID), err)
	}
	if manifest.Impls == nil {
		manifest.Impls = make(map[string]models.ManifestImpl)
	}
	return manifest, nil
}
