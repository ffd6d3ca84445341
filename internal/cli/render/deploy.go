package render

import (
	"fmt"
	"io"

	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
)

// DeployRenderer renders the outcome of a deploy run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render lists the records saved by the run
func (r *DeployRenderer) Render(result *usecase.RunDeployResult) error {
	if result == nil {
		return nil
	}
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments were saved")
		return nil
	}

	fmt.Fprintf(r.out, "\nSaved to deployments/%s (chain %d):\n", result.Network.Name, result.ChainID)
	for _, d := range result.Deployments {
		fmt.Fprintf(r.out, "  %s at %s", color.New(color.FgGreen, color.Bold).Sprint(d.Name), color.New(color.FgYellow).Sprint(d.Address))
		if d.Implementation != "" {
			fmt.Fprintf(r.out, " %s", color.New(color.Faint).Sprintf("(implementation %s)", d.Implementation))
		}
		fmt.Fprintln(r.out)
	}
	return nil
}
