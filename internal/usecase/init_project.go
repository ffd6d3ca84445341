package usecase

import (
	"context"
	"fmt"
)

// Files created by InitProject
const (
	ProjectFileName = "sparkdeploy.toml"
	EnvExampleFile  = ".env.example"
	DeploymentsDir  = "deployments"
)

// InitProject scaffolds a sparkdeploy project in a directory
type InitProject struct {
	fileWriter FileWriter
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(fileWriter FileWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		fileWriter: fileWriter,
		progress:   progress,
	}
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

// Run creates sparkdeploy.toml, .env.example and the deployments directory.
// Existing files are left untouched.
func (i *InitProject) Run(ctx context.Context) (*InitProjectResult, error) {
	result := &InitProjectResult{}

	steps := []func(context.Context) InitStep{
		i.createProjectFile,
		i.createEnvExample,
		i.createDeploymentsDir,
	}
	for _, run := range steps {
		step := run(ctx)
		result.Steps = append(result.Steps, step)
		if !step.Success {
			return result, step.Error
		}
		if step.Name == "Create "+ProjectFileName && step.Message == ProjectFileName+" already exists" {
			result.AlreadyInitialized = true
		}
	}

	return result, nil
}

func (i *InitProject) createProjectFile(ctx context.Context) InitStep {
	return i.writeOnce(ctx, "Create "+ProjectFileName, ProjectFileName, projectTemplate,
		"Created "+ProjectFileName+" with localhost and sepolia networks")
}

func (i *InitProject) createEnvExample(ctx context.Context) InitStep {
	return i.writeOnce(ctx, "Create Environment Example", EnvExampleFile, envExampleTemplate,
		"Created "+EnvExampleFile)
}

func (i *InitProject) createDeploymentsDir(ctx context.Context) InitStep {
	name := "Create Deployments Directory"
	if err := i.fileWriter.EnsureDirectory(ctx, DeploymentsDir); err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to create %s directory: %w", DeploymentsDir, err)}
	}
	return InitStep{Name: name, Success: true, Message: "Deployment records go to " + DeploymentsDir + "/<network>/"}
}

func (i *InitProject) writeOnce(ctx context.Context, name, path, content, created string) InitStep {
	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to check %s: %w", path, err)}
	}
	if exists {
		return InitStep{Name: name, Success: true, Message: path + " already exists"}
	}
	if err := i.fileWriter.WriteFile(ctx, path, content); err != nil {
		return InitStep{Name: name, Error: fmt.Errorf("failed to create %s: %w", path, err)}
	}
	i.progress.Info(created)
	return InitStep{Name: name, Success: true, Message: created}
}

const projectTemplate = `# sparkdeploy.toml

[paths]
artifacts = "artifacts"
deployments = "deployments"
manifests = ".openzeppelin"

# --- Networks ---
# chain_id is checked against the endpoint; leave it out to accept any chain.
# live networks ask for confirmation before deploying.

[networks.localhost]
url = "http://127.0.0.1:8545"

[networks.sepolia]
url = "${SEPOLIA_RPC_URL}"
chain_id = 11155111
confirmations = 2
live = true
proxy_kind = "transparent"

# --- Accounts ---
# "private_key" accounts can sign; "address" accounts are read-only.
# Networks may alias accounts: accounts = { deployer = "ops" }

[accounts.deployer]
type = "private_key"
private_key = "${DEPLOYER_PRIVATE_KEY}"
`

const envExampleTemplate = `# sparkdeploy configuration

# Private keys (for deployment)
DEPLOYER_PRIVATE_KEY=

# RPC URLs
SEPOLIA_RPC_URL=

# Logging (debug, info, warn, error)
SPARKDEPLOY_LOG_LEVEL=info
`
