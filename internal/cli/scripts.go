package cli

import (
	"github.com/artspark/sparkdeploy/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewScriptsCmd creates the scripts command
func NewScriptsCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "List deploy scripts and their tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			scripts, err := app.ListScripts.Run(cmd.Context(), tags)
			if err != nil {
				return err
			}
			return render.NewScriptsRenderer(cmd.OutOrStdout()).Render(scripts)
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Only list scripts with one of these tags")
	return cmd
}
