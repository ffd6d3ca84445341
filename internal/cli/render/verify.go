package render

import (
	"fmt"
	"io"

	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VerifyRenderer renders on-chain code checks
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// Render prints one line per deployment and a summary
func (r *VerifyRenderer) Render(result *usecase.VerifyDeploymentsResult) error {
	if len(result.Results) == 0 {
		fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network)
		return nil
	}

	title := cases.Title(language.English)
	fmt.Fprintf(r.out, "Checking deployments on %s:\n\n", title.String(result.Network))

	for _, res := range result.Results {
		d := res.Deployment
		switch {
		case res.Error != nil:
			color.New(color.FgRed).Fprintf(r.out, "  ✗ %s", d.Name)
			fmt.Fprintf(r.out, " - %v\n", res.Error)
		case !res.HasCode:
			color.New(color.FgRed).Fprintf(r.out, "  ✗ %s", d.Name)
			fmt.Fprintf(r.out, " - no code at %s\n", d.Address)
		case d.Implementation != "" && !res.Implementation:
			color.New(color.FgRed).Fprintf(r.out, "  ✗ %s", d.Name)
			fmt.Fprintf(r.out, " - no code at implementation %s\n", d.Implementation)
		default:
			color.New(color.FgGreen).Fprintf(r.out, "  ✓ %s", d.Name)
			fmt.Fprintf(r.out, " - %s\n", d.Address)
		}
	}

	fmt.Fprintln(r.out)
	if result.Failed > 0 {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%d of %d deployments failed the check", result.Failed, len(result.Results))))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("All %d deployments have code on-chain", len(result.Results))))
	}
	return nil
}
