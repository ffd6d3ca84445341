package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ProjectFile is the project configuration file name
const ProjectFile = "sparkdeploy.toml"

// Default directories, relative to the project root
const (
	DefaultArtifactsDir   = "artifacts"
	DefaultDeploymentsDir = "deployments"
	DefaultManifestsDir   = ".openzeppelin"

	foundryArtifactsDir = "out"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ArtifactsDir:   artifactsDir(projectRoot, project.Paths.Artifacts),
		DeploymentsDir: projectPath(projectRoot, project.Paths.Deployments, DefaultDeploymentsDir),
		ManifestsDir:   projectPath(projectRoot, project.Paths.Manifests, DefaultManifestsDir),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Yes:            v.GetBool("yes"),
		Timeout:        v.GetDuration("timeout"),
		Project:        project,
	}

	if networkName := v.GetString("network"); networkName != "" {
		network, err := ResolveNetwork(project, networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find sparkdeploy.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a sparkdeploy project (%s not found)", ProjectFile)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("SPARKDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", "localhost")
	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("yes", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func projectPath(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(root, configured)
}

// artifactsDir falls back to Foundry's out/ when no Hardhat artifacts exist
func artifactsDir(root, configured string) string {
	if configured != "" {
		return projectPath(root, configured, "")
	}
	hardhat := filepath.Join(root, DefaultArtifactsDir)
	if _, err := os.Stat(hardhat); err != nil {
		foundry := filepath.Join(root, foundryArtifactsDir)
		if _, err := os.Stat(foundry); err == nil {
			return foundry
		}
	}
	return hardhat
}
