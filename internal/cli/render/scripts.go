package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/fatih/color"
)

// ScriptsRenderer renders the registered deploy scripts
type ScriptsRenderer struct {
	out io.Writer
}

// NewScriptsRenderer creates a new scripts renderer
func NewScriptsRenderer(out io.Writer) *ScriptsRenderer {
	return &ScriptsRenderer{out: out}
}

func (r *ScriptsRenderer) Render(scripts []usecase.ScriptInfo) error {
	if len(scripts) == 0 {
		fmt.Fprintln(r.out, "No deploy scripts match")
		return nil
	}
	for _, s := range scripts {
		fmt.Fprintf(r.out, "%s  %s\n", color.New(color.Bold).Sprint(s.Name),
			color.New(color.FgCyan).Sprint(strings.Join(s.Tags, ", ")))
	}
	return nil
}
