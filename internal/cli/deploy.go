package cli

import (
	"github.com/artspark/sparkdeploy/internal/cli/render"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run deploy scripts against a network",
		Long: `Run the registered deploy scripts, in order, against the selected network.

Each script saves its deployments to deployments/<network>/<Name>.json.
Deploying to a network marked live = true asks for confirmation unless
--yes is given.

Examples:
  sparkdeploy deploy --network localhost
  sparkdeploy deploy --network sepolia --tags Artspark --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunDeploy.Run(cmd.Context(), usecase.RunDeployParams{Tags: tags})
			renderErr := render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
			if err != nil {
				return err
			}
			return renderErr
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Only run scripts with one of these tags")

	return cmd
}
