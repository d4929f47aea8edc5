package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opencost/filterkit/pkg/cmd/eval"
	"github.com/opencost/filterkit/pkg/env"
	"github.com/opencost/filterkit/pkg/log"
	"github.com/opencost/filterkit/pkg/version"
)

const (
	// commandRoot is the root command used to route to sub-commands
	commandRoot string = "filterkit"

	// CommandEval filters and transforms a stream of JSON records through a chain
	CommandEval string = "eval"

	// CommandValidate compiles a chain description and prints its normalized form
	CommandValidate string = "validate"
)

// Execute runs the root command for the application. If no sub-command is named on the
// command line, eval is run.
//
// Any additional commands passed in will be added to the root command.
func Execute(cmds ...*cobra.Command) error {
	rootCmd := newRootCommand(cmds...)
	rootCmd.SetArgs(withDefaultCommand(rootCmd, os.Args[1:]))

	return rootCmd.Execute()
}

// withDefaultCommand prepends eval to args when they do not name a sub-command, since cobra
// has no notion of a default sub-command. Requests for the root's version or help are left
// to the root.
func withDefaultCommand(rootCmd *cobra.Command, args []string) []string {
	if len(args) == 0 {
		return []string{CommandEval}
	}

	for _, arg := range args {
		switch arg {
		case "--version", "-v", "--help", "-h":
			return args
		}
	}

	pCmd, _, err := rootCmd.Find(args)
	if err != nil || pCmd.Use == rootCmd.Use {
		return append([]string{CommandEval}, args...)
	}
	return args
}

// newRootCommand creates the root command which routes to the sub-commands.
func newRootCommand(cmds ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:          commandRoot,
		Version:      version.FriendlyVersion(),
		SilenceUsage: true,
	}

	// Add our persistent flags, these are global and available anywhere
	cmd.PersistentFlags().String("log-level", "info", "Set the log level")
	cmd.PersistentFlags().String("log-format", "pretty", "Set the log format - Can be either 'JSON' or 'pretty'")
	cmd.PersistentFlags().Bool("disable-log-color", false, "Disable coloring of log output")

	viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("disable-log-color", cmd.PersistentFlags().Lookup("disable-log-color"))

	// Setup viper to read from the env, this allows reading flags from the command line or the env
	// using the format 'LOG_LEVEL'
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cmd.AddCommand(
		append([]*cobra.Command{
			newEvalCommand(),
			newValidateCommand(),
		}, cmds...)...,
	)

	return cmd
}

func newEvalCommand() *cobra.Command {
	opts := &eval.EvalOpts{}

	evalCmd := &cobra.Command{
		Use:   CommandEval,
		Short: "Filter and transform JSON line records through a chain.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Init logging here so cobra/viper has processed the command line args and flags
			// otherwise only envvars are available during init
			log.InitLogging(true)

			if opts.Config == "" {
				return fmt.Errorf("the --config flag is required")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return eval.Execute(ctx, opts)
		},
	}

	evalCmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to the chain description (YAML or JSON)")
	evalCmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Path to read records from, stdin when omitted")
	evalCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Path to write matched records to, stdout when omitted")
	evalCmd.Flags().IntVarP(&opts.Workers, "workers", "w", env.GetWorkers(), "Number of records evaluated concurrently")
	evalCmd.Flags().IntVar(&opts.BatchSize, "batch-size", env.GetBatchSize(), "Number of records evaluated as a single ordered batch")
	evalCmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", env.GetMetricsFile(), "Path to write prometheus metrics to once the input is exhausted")
	evalCmd.Flags().BoolVar(&opts.IgnoreDecodeErrors, "ignore-decode-errors", env.IsIgnoreDecodeErrors(), "Log records which cannot be decoded instead of failing")

	return evalCmd
}

func newValidateCommand() *cobra.Command {
	var config string

	validateCmd := &cobra.Command{
		Use:   CommandValidate,
		Short: "Compile a chain description and print it in normalized YAML form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.InitLogging(false)

			if config == "" {
				return fmt.Errorf("the --config flag is required")
			}
			return eval.Validate(config, cmd.OutOrStdout())
		},
	}

	validateCmd.Flags().StringVarP(&config, "config", "c", "", "Path to the chain description (YAML or JSON)")

	return validateCmd
}
