package render

import (
	"fmt"
	"io"

	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
)

// InitRenderer renders project initialization steps
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		if step.Success {
			fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), step.Message)
		} else {
			fmt.Fprintf(r.out, "%s %s: %v\n", color.New(color.FgRed).Sprint("✗"), step.Name, step.Error)
		}
	}
	if result.AlreadyInitialized {
		fmt.Fprintln(r.out, "\nProject was already initialized")
		return nil
	}
	fmt.Fprintln(r.out, "\nNext steps:")
	fmt.Fprintln(r.out, "  1. Copy .env.example to .env and set DEPLOYER_PRIVATE_KEY")
	fmt.Fprintln(r.out, "  2. Compile the contracts (npx hardhat compile or forge build)")
	fmt.Fprintln(r.out, "  3. Run: sparkdeploy deploy --network localhost")
	return nil
}
