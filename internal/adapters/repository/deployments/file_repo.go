package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// ChainIDFile holds the chain id of a network directory as decimal text
	ChainIDFile = ".chainId"

	recordExt = ".json"
)

// FileRepository stores deployment records in the hardhat-deploy layout:
// <root>/<network>/.chainId and <root>/<network>/<Name>.json
type FileRepository struct {
	rootDir string
	mu      sync.RWMutex
}

// NewFileRepository creates a registry rooted at the deployments directory
func NewFileRepository(cfg *config.RuntimeConfig) *FileRepository {
	return &FileRepository{rootDir: cfg.DeploymentsDir}
}

// SaveDeployment writes a record, replacing any previous record with the same
// name on the network. numDeployments counts the writes.
func (r *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if err := validate(deployment); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	networkDir := filepath.Join(r.rootDir, deployment.Network)
	if err := os.MkdirAll(networkDir, 0755); err != nil {
		return fmt.Errorf("failed to create network directory: %w", err)
	}
	if err := r.ensureChainID(networkDir, deployment.Network, deployment.ChainID); err != nil {
		return err
	}

	deployment.NumDeployments = 1
	if previous, err := r.readRecord(networkDir, deployment.Name); err == nil {
		deployment.NumDeployments = previous.NumDeployments + 1
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployment %s: %w", deployment.Name, err)
	}
	return writeAtomic(filepath.Join(networkDir, deployment.Name+recordExt), append(data, '\n'))
}

// GetDeployment reads one record
func (r *FileRepository) GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error) {
	if err := checkPathNames(network, name); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	networkDir := filepath.Join(r.rootDir, network)
	deployment, err := r.readRecord(networkDir, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: deployment %s on network %s", domain.ErrNotFound, name, network)
	}
	if err != nil {
		return nil, err
	}

	deployment.Name = name
	deployment.Network = network
	deployment.ChainID, _ = readChainID(networkDir)
	return deployment, nil
}

// ListDeployments returns every record of a network ordered by name. An
// unknown network has no deployments.
func (r *FileRepository) ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error) {
	if !safeName(network) {
		return nil, fmt.Errorf("%w: bad network name %q", domain.ErrInvalidDeployment, network)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	networkDir := filepath.Join(r.rootDir, network)
	names, err := recordNames(networkDir)
	if err != nil {
		return nil, err
	}
	chainID, _ := readChainID(networkDir)

	deployments := make([]*models.Deployment, 0, len(names))
	for _, name := range names {
		deployment, err := r.readRecord(networkDir, name)
		if err != nil {
			return nil, err
		}
		deployment.Name = name
		deployment.Network = network
		deployment.ChainID = chainID
		deployments = append(deployments, deployment)
	}
	return deployments, nil
}

// ListNetworks returns the network directories of the registry
func (r *FileRepository) ListNetworks(ctx context.Context) ([]models.RegistryNetwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.rootDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments directory: %w", err)
	}

	var networks []models.RegistryNetwork
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		networkDir := filepath.Join(r.rootDir, entry.Name())
		names, err := recordNames(networkDir)
		if err != nil {
			return nil, err
		}
		chainID, _ := readChainID(networkDir)
		networks = append(networks, models.RegistryNetwork{
			Name:        entry.Name(),
			ChainID:     chainID,
			Deployments: len(names),
		})
	}
	return networks, nil
}

// DeleteDeployment removes a record
func (r *FileRepository) DeleteDeployment(ctx context.Context, network, name string) error {
	if err := checkPathNames(network, name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(filepath.Join(r.rootDir, network, name+recordExt))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: deployment %s on network %s", domain.ErrNotFound, name, network)
	}
	return err
}

// ensureChainID records the chain id of a new network directory and rejects
// writes from another chain into an existing one.
func (r *FileRepository) ensureChainID(networkDir, network string, chainID uint64) error {
	existing, err := readChainID(networkDir)
	if errors.Is(err, os.ErrNotExist) {
		return writeAtomic(filepath.Join(networkDir, ChainIDFile), []byte(strconv.FormatUint(chainID, 10)))
	}
	if err != nil {
		return err
	}
	if existing != chainID {
		return fmt.Errorf("%w: deployments/%s belongs to chain %d, connected chain is %d",
			domain.ErrNetworkMismatch, network, existing, chainID)
	}
	return nil
}

func (r *FileRepository) readRecord(networkDir, name string) (*models.Deployment, error) {
	data, err := os.ReadFile(filepath.Join(networkDir, name+recordExt))
	if err != nil {
		return nil, err
	}
	var deployment models.Deployment
	if err := json.Unmarshal(data, &deployment); err != nil {
		return nil, fmt.Errorf("failed to parse deployment %s: %w", name, err)
	}
	return &deployment, nil
}

func readChainID(networkDir string) (uint64, error) {
	data, err := os.ReadFile(filepath.Join(networkDir, ChainIDFile))
	if err != nil {
		return 0, err
	}
	chainID, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s in %s: %w", ChainIDFile, networkDir, err)
	}
	return chainID, nil
}

func recordNames(networkDir string) ([]string, error) {
	entries, err := os.ReadDir(networkDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", networkDir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != recordExt {
			continue
		}
		names = append(names, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(names)
	return names, nil
}

// safeName reports whether s can be used as a single path element under the
// registry root
func safeName(s string) bool {
	return s != "" && !strings.ContainsAny(s, `/\`) && !strings.HasPrefix(s, ".")
}

func checkPathNames(network, name string) error {
	if !safeName(network) {
		return fmt.Errorf("%w: bad network name %q", domain.ErrInvalidDeployment, network)
	}
	if !safeName(name) {
		return fmt.Errorf("%w: bad name %q", domain.ErrInvalidDeployment, name)
	}
	return nil
}

func validate(d *models.Deployment) error {
	switch {
	case d.Network == "":
		return fmt.Errorf("%w: %s has no network", domain.ErrInvalidDeployment, d.Name)
	case !safeName(d.Network) || !safeName(d.Name):
		return checkPathNames(d.Network, d.Name)
	case d.Address == "":
		return fmt.Errorf("%w: %s has no address", domain.ErrInvalidDeployment, d.Name)
	case !common.IsHexAddress(d.Address):
		return fmt.Errorf("%w: %s", domain.ErrInvalidAddress, d.Address)
	}
	return nil
}

// writeAtomic writes to a temp file first and renames it into place
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
