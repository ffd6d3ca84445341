package usecase

import (
	"context"

	"github.com/artspark/sparkdeploy/internal/deploy"
)

// ScriptInfo describes a registered deploy script
type ScriptInfo struct {
	Name string
	Tags []string
}

// ListScripts lists the deploy scripts compiled into the binary
type ListScripts struct {
	scripts *deploy.Registry
}

// NewListScripts creates a new ListScripts use case
func NewListScripts(scripts *deploy.Registry) *ListScripts {
	return &ListScripts{scripts: scripts}
}

// Run executes the use case
func (uc *ListScripts) Run(ctx context.Context, tags []string) ([]ScriptInfo, error) {
	var infos []ScriptInfo
	for _, s := range uc.scripts.Select(tags) {
		infos = append(infos, ScriptInfo{Name: s.Name(), Tags: s.Tags()})
	}
	return infos, nil
}
