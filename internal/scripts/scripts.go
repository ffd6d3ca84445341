// Package scripts holds the deploy scripts compiled into the binary.
package scripts

import "github.com/artspark/sparkdeploy/internal/deploy"

// All returns every deploy script
func All() []deploy.Script {
	return []deploy.Script{
		Artspark{},
	}
}

// NewRegistry provides the script registry
func NewRegistry() (*deploy.Registry, error) {
	return deploy.NewRegistry(All()...)
}
