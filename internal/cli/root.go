package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/artspark/sparkdeploy/internal/adapters/progress"
	"github.com/artspark/sparkdeploy/internal/app"
	"github.com/artspark/sparkdeploy/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// sessionKey is the context key for the teardown of one execution
	sessionKey contextKey = "session"
)

// session collects teardown registered while a command runs. cobra skips
// PostRun hooks when RunE fails, so Execute releases it instead.
type session struct {
	mu       sync.Mutex
	cleanups []func()
}

func (s *session) add(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, f)
}

func (s *session) close() {
	s.mu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Execute runs the command tree and stops the spinner and timeout it set up,
// whether or not the command failed.
func Execute(ctx context.Context, rootCmd *cobra.Command) error {
	s := &session{}
	defer s.close()
	return rootCmd.ExecuteContext(context.WithValue(ctx, sessionKey, s))
}

// commands that run without a project
var noProjectCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"init":       true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sparkdeploy",
		Short: "Deploy the Artspark contracts behind upgradeable proxies",
		Long: `sparkdeploy runs deploy scripts against a configured network, deploys
contracts behind upgradeable proxies and records every deployment in
deployments/<network>/<Name>.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noProjectCommands[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return fmt.Errorf("%w (run sparkdeploy init to create one)", err)
			}

			v := config.SetupViper(projectRoot, cmd)
			if !interactiveTerminal() {
				v.Set("non_interactive", true)
			}

			sink := progress.NewSpinnerSink(cmd.ErrOrStderr(), !v.GetBool("non_interactive"))

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			var cancel context.CancelFunc
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			} else {
				ctx, cancel = context.WithCancel(ctx)
			}
			release := func() {
				sink.Stop()
				cancel()
			}
			if s, ok := ctx.Value(sessionKey).(*session); ok {
				s.add(release)
			} else {
				cmd.PostRun = func(*cobra.Command, []string) { release() }
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (defaults to localhost)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this long (default 10m)")

	rootCmd.AddGroup(&cobra.Group{ID: "main", Title: "Main Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands"})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "main"
	rootCmd.AddCommand(deploymentsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	scriptsCmd := NewScriptsCmd()
	scriptsCmd.GroupID = "management"
	rootCmd.AddCommand(scriptsCmd)

	initCmd := NewInitCmd()
	initCmd.GroupID = "management"
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

func interactiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
