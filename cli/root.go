// Package cli provides the roster command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"legal-roster/app"
	"legal-roster/config"
	"legal-roster/console"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type options struct {
	configFile  string
	historyFile string
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Legal Case Counsel Roster",
		Long: `Track legal cases, lawyers and which lawyers work on which case.

Without a subcommand the roster tests the database connection and then
starts the interactive menu.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "configfile", "c", config.DefaultConfigFile, "Path to JSON configuration file")
	rootCmd.Flags().StringVar(&opts.historyFile, "history", "", "Readline history file")

	rootCmd.AddCommand(newPingCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and opens the pool. Logs go to stderr so
// menu output stays readable.
func bootstrap(ctx context.Context, opts *options, logOut io.Writer) (*app.App, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.NewLogger(cfg, logOut))
}

func runInteractive(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := bootstrap(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	_, _ = fmt.Fprintln(out, "\nTesting database connection...")
	names, err := a.Records.TestConnection(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Connection failed: %v\n", err)
		return err
	}
	_, _ = fmt.Fprintln(out, "Connection successful! Sample rows:")
	for _, n := range names {
		_, _ = fmt.Fprintf(out, "  %s %s\n", n.FirstName, n.LastName)
	}

	prompter, err := console.NewReadlinePrompter(opts.historyFile)
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = prompter.Close() }()

	return console.New(a.Records, prompter, out, a.Log).Run(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "roster v%s (%s)\n", Version, GitCommit)
			return nil
		},
	}
}
