package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

const maxSuggestions = 3

// Repository discovers and indexes compiled contract artifacts. It reads both
// the Hardhat layout (artifacts/<source>/<Name>.json) and the Foundry layout
// (out/<File>.sol/<Name>.json).
type Repository struct {
	artifactsDir  string
	contracts     map[string]*models.Contract   // key: "source:Name"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir:  cfg.ArtifactsDir,
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts. It runs once per repository.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.contracts = make(map[string]*models.Contract)
	r.contractNames = make(map[string][]*models.Contract)

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found: compile the contracts first", r.artifactsDir)
	}

	err := filepath.Walk(r.artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "contracts", len(r.contracts))
	return nil
}

// processArtifact adds a single artifact file to the index
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every json file under the artifacts dir is an artifact
		r.log.Debug("skipping unreadable artifact", "path", artifactPath, "error", err)
		return nil
	}
	if len(artifact.ABI) == 0 {
		return nil
	}

	name, source := r.identify(artifactPath, &artifact)
	if name == "" {
		return nil
	}

	relPath, _ := filepath.Rel(r.artifactsDir, artifactPath)
	contract := &models.Contract{
		Name:         name,
		Source:       source,
		ArtifactPath: relPath,
		Artifact:     &artifact,
	}

	r.contracts[contract.FullName()] = contract
	r.contractNames[name] = append(r.contractNames[name], contract)
	return nil
}

// identify returns the contract name and source path of an artifact
func (r *Repository) identify(artifactPath string, artifact *models.Artifact) (string, string) {
	if artifact.IsHardhat() || (artifact.ContractName != "" && artifact.SourceName != "") {
		return artifact.ContractName, artifact.SourceName
	}

	// Foundry: the compilation target in the metadata is authoritative
	var metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	}
	if len(artifact.Metadata) > 0 && json.Unmarshal(artifact.Metadata, &metadata) == nil {
		for source, contract := range metadata.Settings.CompilationTarget {
			return contract, source
		}
	}

	// Fall back to out/<File>.sol/<Name>.json
	name := strings.TrimSuffix(filepath.Base(artifactPath), ".json")
	if i := strings.Index(name, "."); i >= 0 {
		// Foundry writes Name.0.8.20.json when several compiler versions are used
		name = name[:i]
	}
	return name, filepath.Base(filepath.Dir(artifactPath))
}

// GetContract retrieves a contract by name or by "source:Name"
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.Contains(key, ":") {
		if contract, exists := r.contracts[key]; exists {
			return contract, nil
		}
		return nil, &domain.ContractNotFoundErr{Name: key, Suggestions: r.suggest(key, lo.Keys(r.contracts))}
	}

	matches := r.contractNames[key]
	switch len(matches) {
	case 0:
		return nil, &domain.ContractNotFoundErr{Name: key, Suggestions: r.suggest(key, lo.Keys(r.contractNames))}
	case 1:
		return matches[0], nil
	default:
		sources := lo.Map(matches, func(c *models.Contract, _ int) string { return c.Source })
		sort.Strings(sources)
		return nil, &domain.AmbiguousContractErr{Name: key, Sources: sources}
	}
}

// ListContracts returns every indexed contract ordered by full name
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := lo.Values(r.contracts)
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].FullName() < contracts[j].FullName()
	})
	return contracts, nil
}

// suggest returns the closest candidates to an unknown name
func (r *Repository) suggest(key string, candidates []string) []string {
	sort.Strings(candidates)
	matches := fuzzy.Find(key, candidates)
	if len(matches) == 0 {
		// fuzzy needs the query letters in order; retry case-insensitively on the name
		lower := strings.ToLower(key)
		for _, c := range candidates {
			if strings.EqualFold(c, key) || strings.Contains(strings.ToLower(c), lower) {
				matches = append(matches, fuzzy.Match{Str: c})
			}
		}
	}
	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
