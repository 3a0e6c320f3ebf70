package main

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/avm2/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var outputFormatsCompletion = []string{"json", "text"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

// app holds the state shared by all commands of one invocation.
type app struct {
	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "avm2pool",
		Short:         "Inspect and build AVM2 constant pools",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./avm2pool.yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "text", "output format (text, json)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringP("query", "q", "", "JMESPath expression applied to JSON output")
	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}
	root.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))

	root.AddCommand(
		a.dumpCmd(),
		a.internCmd(),
		a.classesCmd(),
	)
	return root
}

// init loads the config file and environment, then configures color
// output and logging.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("AVM2POOL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("avm2pool")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !goerrors.As(err, &notFound) {
			return errors.ConfigErrorf("reading config: %w", err)
		}
	}

	processGlobalFlags(a.v)

	logger, err := newLogger(a.v.GetString("log-level"), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("path", used).Msg("loaded config")
	}

	switch a.outputFormat() {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", a.v.GetString("output"))
	}
}

// outputFormat returns the requested output format. A query implies JSON.
func (a *app) outputFormat() string {
	if a.v.GetString("query") != "" {
		return "json"
	}
	return strings.ToLower(a.v.GetString("output"))
}
