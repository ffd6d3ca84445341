package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format Format
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format Format) *NetworksRenderer {
	return &NetworksRenderer{out: out, format: format}
}

type networkOutput struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	ChainID     uint64 `json:"chainId,omitempty"`
	Live        bool   `json:"live"`
	Configured  bool   `json:"configured"`
	Current     bool   `json:"current"`
	Deployments int    `json:"deployments"`
}

// Render renders the configured and recorded networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.format != FormatTable {
		out := make([]networkOutput, 0, len(result.Networks))
		for _, n := range result.Networks {
			out = append(out, networkOutput(n))
		}
		if r.format == FormatJSON {
			return WriteJSON(r.out, out)
		}
		return WriteYAML(r.out, out)
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in sparkdeploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "Deployments", "URL"})

	for _, n := range result.Networks {
		marker := " "
		if n.Current {
			marker = color.New(color.FgGreen).Sprint("●")
		}
		name := n.Name
		if n.Live {
			name += color.New(color.FgRed).Sprint(" (live)")
		}
		if !n.Configured {
			name += color.New(color.Faint).Sprint(" (registry only)")
		}
		chainID := "-"
		if n.ChainID != 0 {
			chainID = strconv.FormatUint(n.ChainID, 10)
		}
		t.AppendRow(table.Row{marker, name, chainID, n.Deployments, n.URL})
	}
	t.Render()
	return nil
}
