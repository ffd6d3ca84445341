package app

import (
	"log/slog"

	"github.com/artspark/sparkdeploy/internal/adapters/interactive"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Prompter *interactive.Prompter

	// Use cases
	RunDeploy         *usecase.RunDeploy
	ListDeployments   *usecase.ListDeployments
	ShowDeployment    *usecase.ShowDeployment
	DeleteDeployment  *usecase.DeleteDeployment
	VerifyDeployments *usecase.VerifyDeployments
	ListNetworks      *usecase.ListNetworks
	ListScripts       *usecase.ListScripts
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	prompter *interactive.Prompter,
	runDeploy *usecase.RunDeploy,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	deleteDeployment *usecase.DeleteDeployment,
	verifyDeployments *usecase.VerifyDeployments,
	listNetworks *usecase.ListNetworks,
	listScripts *usecase.ListScripts,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		Prompter:          prompter,
		RunDeploy:         runDeploy,
		ListDeployments:   listDeployments,
		ShowDeployment:    showDeployment,
		DeleteDeployment:  deleteDeployment,
		VerifyDeployments: verifyDeployments,
		ListNetworks:      listNetworks,
		ListScripts:       listScripts,
	}, nil
}
