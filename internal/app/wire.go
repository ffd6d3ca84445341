//go:build wireinject
// +build wireinject

package app

import (
	"github.com/artspark/sparkdeploy/internal/adapters"
	"github.com/artspark/sparkdeploy/internal/config"
	"github.com/artspark/sparkdeploy/internal/logging"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunDeploy,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewDeleteDeployment,
		usecase.NewVerifyDeployments,
		usecase.NewListNetworks,
		usecase.NewListScripts,

		// App
		NewApp,
	)
	return nil, nil
}
