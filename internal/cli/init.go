package cli

import (
	"os"

	"github.com/artspark/sparkdeploy/internal/adapters/fs"
	"github.com/artspark/sparkdeploy/internal/adapters/progress"
	"github.com/artspark/sparkdeploy/internal/cli/render"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create sparkdeploy.toml in the current directory",
		Long: `Create sparkdeploy.toml, .env.example and the deployments directory in
the current directory. Existing files are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			uc := usecase.NewInitProject(fs.NewFileWriter(dir), progress.NewNopSink())
			result, err := uc.Run(cmd.Context())
			if renderErr := render.NewInitRenderer(cmd.OutOrStdout()).Render(result); renderErr != nil && err == nil {
				err = renderErr
			}
			return err
		},
	}
}
