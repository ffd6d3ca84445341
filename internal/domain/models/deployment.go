package models

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Deployment is a record in the deployment registry. The JSON layout follows
// hardhat-deploy so frontends reading deployments/<network>/<Name>.json keep working.
type Deployment struct {
	Address                string            `json:"address"`
	ABI                    json.RawMessage   `json:"abi"`
	TransactionHash        string            `json:"transactionHash,omitempty"`
	Receipt                *Receipt          `json:"receipt,omitempty"`
	Args                   []any             `json:"args,omitempty"`
	NumDeployments         int               `json:"numDeployments"`
	Implementation         string            `json:"implementation,omitempty"`
	ProxyKind              ProxyKind         `json:"proxyKind,omitempty"`
	SolcInputHash          string            `json:"solcInputHash,omitempty"`
	Metadata               string            `json:"metadata,omitempty"`
	Bytecode               string            `json:"bytecode,omitempty"`
	DeployedBytecode       string            `json:"deployedBytecode,omitempty"`
	LinkReferences         json.RawMessage   `json:"linkReferences,omitempty"`
	DeployedLinkReferences json.RawMessage   `json:"deployedLinkReferences,omitempty"`
	MethodIdentifiers      map[string]string `json:"methodIdentifiers,omitempty"`
	DevDoc                 json.RawMessage   `json:"devdoc,omitempty"`
	UserDoc                json.RawMessage   `json:"userdoc,omitempty"`
	StorageLayout          json.RawMessage   `json:"storageLayout,omitempty"`

	// Runtime fields (not persisted)
	Name    string `json:"-"` // Logical name, the file stem in the registry
	Network string `json:"-"`
	ChainID uint64 `json:"-"`
}

// Receipt is the persisted subset of a transaction receipt
type Receipt struct {
	From             string `json:"from"`
	To               string `json:"to,omitempty"`
	ContractAddress  string `json:"contractAddress,omitempty"`
	TransactionIndex uint   `json:"transactionIndex"`
	GasUsed          uint64 `json:"gasUsed"`
	BlockHash        string `json:"blockHash"`
	TransactionHash  string `json:"transactionHash"`
	BlockNumber      uint64 `json:"blockNumber"`
	Status           uint64 `json:"status"`
}

// NewDeployment builds a record from an address and the contract's extended
// artifact, the equivalent of {address, ...artifact}.
func NewDeployment(address common.Address, artifact *ExtendedArtifact) *Deployment {
	d := &Deployment{
		Address: address.Hex(),
	}
	if artifact == nil {
		return d
	}
	d.ABI = artifact.ABI
	d.SolcInputHash = artifact.SolcInputHash
	d.Metadata = artifact.Metadata
	d.Bytecode = artifact.Bytecode
	d.DeployedBytecode = artifact.DeployedBytecode
	d.LinkReferences = artifact.LinkReferences
	d.DeployedLinkReferences = artifact.DeployedLinkReferences
	d.MethodIdentifiers = artifact.MethodIdentifiers
	d.DevDoc = artifact.DevDoc
	d.UserDoc = artifact.UserDoc
	d.StorageLayout = artifact.StorageLayout
	return d
}

// NewReceipt converts a go-ethereum receipt
func NewReceipt(r *types.Receipt, from common.Address, to *common.Address) *Receipt {
	if r == nil {
		return nil
	}
	receipt := &Receipt{
		From:             from.Hex(),
		TransactionIndex: r.TransactionIndex,
		GasUsed:          r.GasUsed,
		BlockHash:        r.BlockHash.Hex(),
		TransactionHash:  r.TxHash.Hex(),
		Status:           r.Status,
	}
	if to != nil {
		receipt.To = to.Hex()
	}
	if r.ContractAddress != (common.Address{}) {
		receipt.ContractAddress = r.ContractAddress.Hex()
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}
	return receipt
}

// NormalizeArgs converts call arguments into JSON friendly values: numbers
// become decimal strings and addresses checksummed hex.
func NormalizeArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = normalizeArg(arg)
	}
	return out
}

func normalizeArg(arg any) any {
	switch v := arg.(type) {
	case *big.Int:
		if v == nil {
			return "0"
		}
		return v.String()
	case common.Address:
		return v.Hex()
	case *common.Address:
		return v.Hex()
	case common.Hash:
		return v.Hex()
	case []byte:
		return "0x" + common.Bytes2Hex(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	default:
		return v
	}
}

// RegistryNetwork is a network directory in the deployment registry
type RegistryNetwork struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	Deployments int    `json:"deployments"`
}
