package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/artspark/sparkdeploy/internal/domain/models"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Color styles for table format
var (
	networkHeader     = color.New(color.BgCyan, color.FgBlack)
	networkHeaderBold = color.New(color.BgCyan, color.FgBlack, color.Bold)
	nameStyle         = color.New(color.FgGreen, color.Bold)
	proxyStyle        = color.New(color.FgMagenta, color.Bold)
	addressStyle      = color.New(color.FgWhite)
	implPrefixStyle   = color.New(color.Faint)
)

// DeploymentsRenderer renders deployment lists
type DeploymentsRenderer struct {
	out    io.Writer
	format Format
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format Format) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, format: format}
}

// Render renders the deployments of one network
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	switch r.format {
	case FormatJSON:
		return WriteJSON(r.out, listOutput(result))
	case FormatYAML:
		return WriteYAML(r.out, listOutput(result))
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network)
		return nil
	}

	chainID := result.Deployments[0].ChainID
	fmt.Fprintln(r.out, networkHeader.Sprintf(" ⛓ %-10s", "network:")+networkHeaderBold.Sprintf("%-20s", result.Network)+
		networkHeader.Sprintf(" chain %-12d", chainID))
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{PaddingRight: "   "}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	for _, d := range result.Deployments {
		name := nameStyle.Sprint(d.Name)
		if d.ProxyKind != "" {
			name = proxyStyle.Sprint(d.Name) + implPrefixStyle.Sprintf(" [%s]", d.ProxyKind)
		}
		t.AppendRow(table.Row{name, addressStyle.Sprint(d.Address), shortHex(d.TransactionHash), strconv.Itoa(d.NumDeployments)})
		if d.Implementation != "" {
			t.AppendRow(table.Row{implPrefixStyle.Sprint("└─ implementation"), implPrefixStyle.Sprint(d.Implementation), "", ""})
		}
	}
	t.Render()
	return nil
}

type deploymentSummary struct {
	Name           string           `json:"name"`
	Address        string           `json:"address"`
	Implementation string           `json:"implementation,omitempty"`
	ProxyKind      models.ProxyKind `json:"proxyKind,omitempty"`
	TxHash         string           `json:"transactionHash,omitempty"`
	NumDeployments int              `json:"numDeployments"`
}

type listDeploymentsOutput struct {
	Network     string              `json:"network"`
	ChainID     uint64              `json:"chainId,omitempty"`
	Deployments []deploymentSummary `json:"deployments"`
}

func listOutput(result *usecase.DeploymentListResult) listDeploymentsOutput {
	out := listDeploymentsOutput{Network: result.Network, Deployments: []deploymentSummary{}}
	for _, d := range result.Deployments {
		out.ChainID = d.ChainID
		out.Deployments = append(out.Deployments, deploymentSummary{
			Name:           d.Name,
			Address:        d.Address,
			Implementation: d.Implementation,
			ProxyKind:      d.ProxyKind,
			TxHash:         d.TransactionHash,
			NumDeployments: d.NumDeployments,
		})
	}
	return out
}
