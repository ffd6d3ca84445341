package cli

import (
	"errors"

	"github.com/artspark/sparkdeploy/internal/app"
	"github.com/artspark/sparkdeploy/internal/cli/render"
	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/spf13/cobra"
)

var errVerifyFailed = errors.New("some deployments have no code on-chain")

// NewDeploymentsCmd creates the deployments command group
func NewDeploymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "Inspect the deployment registry",
		Long:  "Commands for reading and maintaining deployments/<network>/*.json",
	}

	cmd.AddCommand(newDeploymentsListCmd())
	cmd.AddCommand(newDeploymentsShowCmd())
	cmd.AddCommand(newDeploymentsDeleteCmd())
	cmd.AddCommand(newDeploymentsVerifyCmd())

	return cmd
}

func newDeploymentsListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployments of a network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{})
			if err != nil {
				return err
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), f).Render(result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")
	return cmd
}

func newDeploymentsShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a deployment record",
		Long: `Show a deployment record. Without a name, pick one interactively.

Examples:
  sparkdeploy deployments show Artspark
  sparkdeploy deployments show Artspark --network sepolia --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			name, err := deploymentName(cmd, app, args, "Select a deployment")
			if err != nil {
				return err
			}

			deployment, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{Name: name})
			if err != nil {
				return err
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout(), f).Render(deployment)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")
	return cmd
}

func newDeploymentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a deployment record",
		Long: `Delete a deployment record from the registry. The contract stays on-chain;
the next deploy run deploys it again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			name, err := deploymentName(cmd, app, args, "Select a deployment to delete")
			if err != nil {
				return err
			}

			if err := app.DeleteDeployment.Run(cmd.Context(), usecase.DeleteDeploymentParams{Name: name}); err != nil {
				return err
			}
			cmd.Println(render.FormatSuccess("Deleted " + name + " from " + app.Config.Network.Name))
			return nil
		},
	}
}

func newDeploymentsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [name...]",
		Short: "Check that recorded deployments have code on-chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.VerifyDeployments.Run(cmd.Context(), usecase.VerifyDeploymentsParams{Names: args})
			if err != nil {
				return err
			}
			if err := render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}
			if result.Failed > 0 {
				return errVerifyFailed
			}
			return nil
		},
	}
}

// deploymentName takes the name argument or asks the user to pick a record
func deploymentName(cmd *cobra.Command, app *app.App, args []string, prompt string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	list, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{})
	if err != nil {
		return "", err
	}
	selected, err := app.Prompter.SelectDeployment(cmd.Context(), list.Deployments, prompt)
	if err != nil {
		return "", err
	}
	return selected.Name, nil
}
