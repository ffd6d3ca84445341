package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/fatih/color"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out    io.Writer
	format Format
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format Format) *DeploymentRenderer {
	return &DeploymentRenderer{out: out, format: format}
}

// Render renders a deployment record. json and yaml print the record as it is
// stored in the registry.
func (r *DeploymentRenderer) Render(d *models.Deployment) error {
	switch r.format {
	case FormatJSON:
		return WriteJSON(r.out, d)
	case FormatYAML:
		return WriteYAML(r.out, d)
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.Name)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Address: %s\n", color.New(color.FgYellow).Sprint(d.Address))
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", d.Network, d.ChainID)
	fmt.Fprintf(r.out, "  Deployments: %d\n", d.NumDeployments)

	if d.ProxyKind != "" || d.Implementation != "" {
		fmt.Fprintln(r.out, "\nProxy Information:")
		if d.ProxyKind != "" {
			fmt.Fprintf(r.out, "  Kind: %s\n", d.ProxyKind)
		}
		if d.Implementation != "" {
			fmt.Fprintf(r.out, "  Implementation: %s\n", d.Implementation)
		}
	}

	if d.TransactionHash != "" || d.Receipt != nil {
		fmt.Fprintln(r.out, "\nTransaction:")
		if d.TransactionHash != "" {
			fmt.Fprintf(r.out, "  Hash: %s\n", d.TransactionHash)
		}
		if d.Receipt != nil {
			fmt.Fprintf(r.out, "  From: %s\n", d.Receipt.From)
			fmt.Fprintf(r.out, "  Block: %d\n", d.Receipt.BlockNumber)
			fmt.Fprintf(r.out, "  Gas Used: %d\n", d.Receipt.GasUsed)
		}
	}

	if len(d.Args) > 0 {
		fmt.Fprintln(r.out, "\nInitializer Arguments:")
		for i, arg := range d.Args {
			fmt.Fprintf(r.out, "  [%d] %v\n", i, arg)
		}
	}

	if methods := abiFunctions(d.ABI); len(methods) > 0 {
		fmt.Fprintf(r.out, "\nABI: %d functions\n", len(methods))
		for _, m := range methods {
			fmt.Fprintf(r.out, "  %s\n", color.New(color.Faint).Sprint(m))
		}
	}

	return nil
}

// abiFunctions lists function names of a raw ABI, sorted
func abiFunctions(raw json.RawMessage) []string {
	var entries []struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.Type == "function" {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names
}
