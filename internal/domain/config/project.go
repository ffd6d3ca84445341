package config

// SenderType is the kind of a configured account
type SenderType string

const (
	SenderTypePrivateKey SenderType = "private_key"
	SenderTypeAddress    SenderType = "address"
)

// ProjectConfig represents the sparkdeploy.toml file
type ProjectConfig struct {
	Paths    PathsConfig              `toml:"paths"`
	Networks map[string]NetworkConfig `toml:"networks"`
	Accounts map[string]AccountConfig `toml:"accounts"`
}

// PathsConfig holds project-relative directories
type PathsConfig struct {
	Artifacts   string `toml:"artifacts,omitempty"`
	Deployments string `toml:"deployments,omitempty"`
	Manifests   string `toml:"manifests,omitempty"`
}

// NetworkConfig represents a [networks.*] section
type NetworkConfig struct {
	URL           string            `toml:"url"`
	ChainID       uint64            `toml:"chain_id,omitempty"`
	Confirmations uint64            `toml:"confirmations,omitempty"`
	PollInterval  string            `toml:"poll_interval,omitempty"` // e.g. "500ms"
	Live          bool              `toml:"live,omitempty"`
	ProxyKind     string            `toml:"proxy_kind,omitempty"` // "transparent" or "uups"
	Accounts      map[string]string `toml:"accounts,omitempty"`   // alias -> [accounts.*] name
}

// AccountConfig represents a named signing entity in [accounts.*] sections.
type AccountConfig struct {
	Type       SenderType `toml:"type"`
	Address    string     `toml:"address,omitempty"`
	PrivateKey string     `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
}
