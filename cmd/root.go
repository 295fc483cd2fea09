package cmd

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/masnyjimmy/asyncdocket/config"
	"github.com/masnyjimmy/asyncdocket/logging"
)

// app carries what the root command resolved for its subcommands.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "asyncdocket",
		Short: "Generate AsyncAPI documents from docket files",
		Long: `asyncdocket reads a docket (API info, servers, producers, consumers and
schemas) and assembles an AsyncAPI 2.0.0 document from it.

Settings can also be given through ASYNCDOCKET_* environment variables.
Flags take precedence over the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return exitWith(exitConfig, err)
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return exitWith(exitConfig, err)
	}

	a.cfg = cfg
	a.log = logger
	return nil
}

// Execute runs the command line and exits with the failing stage's code.
func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}
