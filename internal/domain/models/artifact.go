package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/artspark/sparkdeploy/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HardhatArtifactFormat is the _format value written by the Hardhat compiler task
const HardhatArtifactFormat = "hh-sol-artifact-1"

// Bytecode holds hex bytecode. It decodes from the Hardhat form (a plain
// string) and from the Foundry form ({"object": "0x..", "linkReferences": {}}).
type Bytecode struct {
	Object         string
	LinkReferences json.RawMessage
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}
	var obj struct {
		Object         string          `json:"object"`
		LinkReferences json.RawMessage `json:"linkReferences"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.Object = obj.Object
	b.LinkReferences = obj.LinkReferences
	return nil
}

func (b Bytecode) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Hex())
}

// Hex returns the bytecode with a 0x prefix, or "0x" when empty
func (b Bytecode) Hex() string {
	return "0x" + strings.TrimPrefix(b.Object, "0x")
}

// IsEmpty reports whether there is no code (interfaces, abstract contracts)
func (b Bytecode) IsEmpty() bool {
	return strings.TrimPrefix(b.Object, "0x") == ""
}

// IsLinked reports whether all library placeholders have been replaced
func (b Bytecode) IsLinked() bool {
	return !strings.Contains(b.Object, "__")
}

// Bytes decodes the bytecode, failing on unlinked library placeholders
func (b Bytecode) Bytes() ([]byte, error) {
	if !b.IsLinked() {
		return nil, domain.ErrUnlinkedLibraries
	}
	code, err := hexutil.Decode(b.Hex())
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return code, nil
}

// Artifact represents a compilation artifact in either Hardhat or Foundry layout
type Artifact struct {
	Format                 string            `json:"_format,omitempty"`
	ContractName           string            `json:"contractName,omitempty"`
	SourceName             string            `json:"sourceName,omitempty"`
	ABI                    json.RawMessage   `json:"abi"`
	Bytecode               Bytecode          `json:"bytecode"`
	DeployedBytecode       Bytecode          `json:"deployedBytecode"`
	LinkReferences         json.RawMessage   `json:"linkReferences,omitempty"`
	DeployedLinkReferences json.RawMessage   `json:"deployedLinkReferences,omitempty"`
	MethodIdentifiers      map[string]string `json:"methodIdentifiers,omitempty"`
	RawMetadata            string            `json:"rawMetadata,omitempty"`
	Metadata               json.RawMessage   `json:"metadata,omitempty"`
	DevDoc                 json.RawMessage   `json:"devdoc,omitempty"`
	UserDoc                json.RawMessage   `json:"userdoc,omitempty"`
	StorageLayout          json.RawMessage   `json:"storageLayout,omitempty"`
	SolcInputHash          string            `json:"solcInputHash,omitempty"`
}

// IsHardhat reports whether the artifact was written by Hardhat
func (a *Artifact) IsHardhat() bool {
	return a.Format == HardhatArtifactFormat
}

// Contract represents a compiled contract discovered in the artifacts directory
type Contract struct {
	Name         string    `json:"name"`
	Source       string    `json:"source"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// FullName returns the unambiguous "source:Name" reference
func (c *Contract) FullName() string {
	return fmt.Sprintf("%s:%s", c.Source, c.Name)
}

// ParseABI parses the artifact ABI
func (c *Contract) ParseABI() (*abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(c.Artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", c.Name, err)
	}
	return &parsed, nil
}

// ExtendedArtifact is the interface and bytecode metadata persisted next to a
// deployment address.
type ExtendedArtifact struct {
	ContractName           string            `json:"contractName"`
	SourceName             string            `json:"sourceName"`
	ABI                    json.RawMessage   `json:"abi"`
	Bytecode               string            `json:"bytecode"`
	DeployedBytecode       string            `json:"deployedBytecode"`
	LinkReferences         json.RawMessage   `json:"linkReferences,omitempty"`
	DeployedLinkReferences json.RawMessage   `json:"deployedLinkReferences,omitempty"`
	MethodIdentifiers      map[string]string `json:"methodIdentifiers,omitempty"`
	DevDoc                 json.RawMessage   `json:"devdoc,omitempty"`
	UserDoc                json.RawMessage   `json:"userdoc,omitempty"`
	StorageLayout          json.RawMessage   `json:"storageLayout,omitempty"`
	Metadata               string            `json:"metadata,omitempty"`
	SolcInputHash          string            `json:"solcInputHash,omitempty"`
}

// Extended builds the extended artifact of a contract
func (c *Contract) Extended() *ExtendedArtifact {
	a := c.Artifact
	ext := &ExtendedArtifact{
		ContractName:           c.Name,
		SourceName:             c.Source,
		ABI:                    a.ABI,
		Bytecode:               a.Bytecode.Hex(),
		DeployedBytecode:       a.DeployedBytecode.Hex(),
		LinkReferences:         firstRaw(a.LinkReferences, a.Bytecode.LinkReferences),
		DeployedLinkReferences: firstRaw(a.DeployedLinkReferences, a.DeployedBytecode.LinkReferences),
		MethodIdentifiers:      a.MethodIdentifiers,
		DevDoc:                 a.DevDoc,
		UserDoc:                a.UserDoc,
		StorageLayout:          a.StorageLayout,
		Metadata:               a.RawMetadata,
		SolcInputHash:          a.SolcInputHash,
	}
	if ext.Metadata == "" && len(a.Metadata) > 0 {
		// Hardhat build output stores metadata as a JSON string, Foundry as an object
		if err := json.Unmarshal(a.Metadata, &ext.Metadata); err != nil {
			ext.Metadata = string(a.Metadata)
		}
	}
	return ext
}

func firstRaw(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return nil
}
