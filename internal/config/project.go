package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// LoadProjectConfig loads .env files and parses sparkdeploy.toml. Values are
// kept raw; ${VAR} references are expanded when a network or account is
// resolved so errors can name the variable.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ProjectFile)
	var project config.ProjectConfig
	if _, err := toml.DecodeFile(path, &project); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	if err := validateProject(&project); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ProjectFile, err)
	}
	return &project, nil
}

// loadEnvFiles loads .env then .env.local. godotenv never overrides variables
// that are already set, so the process environment wins.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// validateProject reports every problem in the file at once
func validateProject(project *config.ProjectConfig) error {
	var result *multierror.Error

	for _, name := range sortedKeys(project.Networks) {
		network := project.Networks[name]
		if network.PollInterval != "" {
			if _, err := time.ParseDuration(network.PollInterval); err != nil {
				result = multierror.Append(result, fmt.Errorf("networks.%s.poll_interval: %w", name, err))
			}
		}
		if _, err := models.ParseProxyKind(network.ProxyKind); err != nil {
			result = multierror.Append(result, fmt.Errorf("networks.%s.proxy_kind: %w", name, err))
		}
		for _, alias := range sortedKeys(network.Accounts) {
			target := network.Accounts[alias]
			if _, ok := project.Accounts[target]; !ok {
				result = multierror.Append(result, fmt.Errorf("networks.%s.accounts.%s: unknown account %q", name, alias, target))
			}
		}
	}

	for _, name := range sortedKeys(project.Accounts) {
		switch account := project.Accounts[name]; account.Type {
		case config.SenderTypePrivateKey, config.SenderTypeAddress:
		case "":
			result = multierror.Append(result, fmt.Errorf("accounts.%s: type is required (private_key or address)", name))
		default:
			result = multierror.Append(result, fmt.Errorf("accounts.%s: unknown type %q (expected private_key or address)", name, account.Type))
		}
	}

	return result.ErrorOrNil()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
