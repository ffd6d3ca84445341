package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	ArtifactsDir   string
	DeploymentsDir string
	ManifestsDir   string

	// Context settings
	Network *Network // nil if the selected network is not configured

	// Execution settings
	Debug          bool
	NonInteractive bool
	Yes            bool // Skip confirmation prompts for live networks
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig
}

// Network represents a resolved network configuration
type Network struct {
	Name          string            `json:"name"`
	RPCURL        string            `json:"rpcUrl"`
	ChainID       uint64            `json:"chainId"` // 0 means take it from the RPC endpoint
	Confirmations uint64            `json:"confirmations"`
	PollInterval  time.Duration     `json:"pollInterval"`
	Live          bool              `json:"live"`
	ProxyKind     string            `json:"proxyKind"`
	Accounts      map[string]string `json:"accounts,omitempty"` // alias -> account name
}
