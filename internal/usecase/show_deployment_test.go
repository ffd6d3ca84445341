package usecase_test

import (
	"context"
	"testing"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/artspark/sparkdeploy/internal/domain/config"
	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()
	record := &models.Deployment{Name: "Artspark", Network: "sepolia", Address: "0x1111111111111111111111111111111111111111"}

	t.Run("selected network", func(t *testing.T) {
		store := new(MockDeploymentRepository)
		store.On("GetDeployment", ctx, "localhost", "Artspark").Return(record, nil)
		sink := &MockProgressSink{}
		cfg := &config.RuntimeConfig{Network: &config.Network{Name: "localhost"}}

		got, err := usecase.NewShowDeployment(cfg, store, sink).Run(ctx, usecase.ShowDeploymentParams{Name: "Artspark"})
		require.NoError(t, err)
		assert.Same(t, record, got)
		store.AssertExpectations(t)
	})

	t.Run("explicit network wins", func(t *testing.T) {
		store := new(MockDeploymentRepository)
		store.On("GetDeployment", ctx, "sepolia", "Artspark").Return(record, nil)
		cfg := &config.RuntimeConfig{Network: &config.Network{Name: "localhost"}}

		_, err := usecase.NewShowDeployment(cfg, store, &MockProgressSink{}).
			Run(ctx, usecase.ShowDeploymentParams{Network: "sepolia", Name: "Artspark"})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("missing record", func(t *testing.T) {
		store := new(MockDeploymentRepository)
		store.On("GetDeployment", ctx, "localhost", "Nope").Return(nil, domain.ErrNotFound)
		cfg := &config.RuntimeConfig{Network: &config.Network{Name: "localhost"}}

		_, err := usecase.NewShowDeployment(cfg, store, &MockProgressSink{}).Run(ctx, usecase.ShowDeploymentParams{Name: "Nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := usecase.NewShowDeployment(&config.RuntimeConfig{}, new(MockDeploymentRepository), &MockProgressSink{}).
			Run(ctx, usecase.ShowDeploymentParams{})
		assert.Error(t, err)
	})
}
