package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ProxyKind identifies the upgradeable proxy pattern
type ProxyKind string

const (
	ProxyKindTransparent ProxyKind = "transparent"
	ProxyKindUUPS        ProxyKind = "uups"
)

// ProxyContractName returns the artifact name of the proxy contract for the kind
func (k ProxyKind) ProxyContractName() string {
	switch k {
	case ProxyKindUUPS:
		return "ERC1967Proxy"
	default:
		return "TransparentUpgradeableProxy"
	}
}

// ParseProxyKind parses a configured proxy kind, defaulting to transparent
func ParseProxyKind(s string) (ProxyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ProxyKindTransparent):
		return ProxyKindTransparent, nil
	case string(ProxyKindUUPS):
		return ProxyKindUUPS, nil
	default:
		return "", fmt.Errorf("unknown proxy kind %q (expected transparent or uups)", s)
	}
}

// ProxyDeployment is the outcome of deploying an implementation behind a proxy
type ProxyDeployment struct {
	Kind                 ProxyKind
	Address              common.Address
	Implementation       common.Address
	Deployer             common.Address
	TxHash               common.Hash
	ImplementationTxHash common.Hash
	Receipt              *types.Receipt
	Args                 []any // Initializer arguments as passed by the caller
}

// UpgradesManifest records proxies and implementations per chain, using the
// file and field names of the OpenZeppelin upgrades plugins
// (.openzeppelin/<network>.json). It is an address record only: no storage
// layouts are written.
type UpgradesManifest struct {
	ManifestVersion string                  `json:"manifestVersion"`
	Admin           json.RawMessage         `json:"admin,omitempty"`
	Proxies         []ManifestProxy         `json:"proxies"`
	Impls           map[string]ManifestImpl `json:"impls"`
}

// ManifestProxy is a deployed proxy entry
type ManifestProxy struct {
	Address string    `json:"address"`
	TxHash  string    `json:"txHash,omitempty"`
	Kind    ProxyKind `json:"kind"`
}

// ManifestImpl is a deployed implementation entry, keyed by bytecode hash
type ManifestImpl struct {
	Address string          `json:"address"`
	TxHash  string          `json:"txHash,omitempty"`
	Layout  json.RawMessage `json:"layout,omitempty"` // preserved from an existing file, never produced
}
