package deploy

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Script is a deployment procedure. Tags group scripts so a run can select a
// subset of them.
type Script interface {
	Name() string
	Tags() []string
	Run(ctx context.Context, env *Environment) error
}

// Registry holds the deploy scripts known to the binary
type Registry struct {
	scripts map[string]Script
}

// NewRegistry creates a registry with the given scripts
func NewRegistry(scripts ...Script) (*Registry, error) {
	r := &Registry{scripts: make(map[string]Script)}
	for _, s := range scripts {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a script. Names must be unique.
func (r *Registry) Register(s Script) error {
	if s.Name() == "" {
		return fmt.Errorf("deploy script has no name")
	}
	if _, exists := r.scripts[s.Name()]; exists {
		return fmt.Errorf("deploy script %q registered twice", s.Name())
	}
	r.scripts[s.Name()] = s
	return nil
}

// All returns every registered script ordered by name
func (r *Registry) All() []Script {
	scripts := lo.Values(r.scripts)
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].Name() < scripts[j].Name()
	})
	return scripts
}

// Select returns the scripts carrying at least one of the tags, ordered by
// name. No tags selects everything.
func (r *Registry) Select(tags []string) []Script {
	all := r.All()
	if len(tags) == 0 {
		return all
	}
	return lo.Filter(all, func(s Script, _ int) bool {
		return lo.Some(s.Tags(), tags)
	})
}

// Tags returns the distinct tags across all scripts, sorted
func (r *Registry) Tags() []string {
	tags := lo.Uniq(lo.FlatMap(r.All(), func(s Script, _ int) []string {
		return s.Tags()
	}))
	sort.Strings(tags)
	return tags
}
