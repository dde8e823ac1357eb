package commands

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tscheck/pkg/config"
	"tscheck/pkg/errors"
)

// globalOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type globalOptions struct {
	configPath string
	envFile    string
	color      string
	format     string
	workers    int
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand builds the tscheck command tree. Running the root command
// with paths behaves like `tscheck check`.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	check := &checkOptions{}

	rootCmd := &cobra.Command{
		Use:   "tscheck [paths...]",
		Short: "tscheck is a structural type checker for a TypeScript-like language",
		Long: `tscheck parses a subset of TypeScript and checks variable declarations,
function returns and binary operators against their type annotations.

Without a subcommand it checks the given files and directories, or the
files selected by tscheck.yaml when no paths are given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, check, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to the project file (default: ./"+config.DefaultFileName+" if present)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file with TSCHECK_* overrides")
	flags.StringVar(&opts.color, "color", "", "Colorize output: auto, always or never")
	flags.StringVar(&opts.format, "format", "", "Report format: text or json")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Number of files checked in parallel (default: number of CPUs)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	check.register(rootCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	rootCmd.AddCommand(newCheckCommand(opts), newEvalCommand(opts), newTypesCommand(opts))
	return rootCmd
}

// Execute runs the command tree against os.Args and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return ExitCode(err)
}

func reportError(w io.Writer, err error) {
	if exitErr, ok := err.(*ExitError); ok && exitErr.Err == nil {
		return
	}
	fmt.Fprintf(w, "tscheck: %v\n", err)
}

// resolve merges defaults, the project file, the dotenv file, the process
// environment and finally the flags.
func (o *globalOptions) resolve(cmd *cobra.Command) error {
	o.logger = log.New(io.Discard, "", 0)
	if o.verbose {
		o.logger = log.New(cmd.ErrOrStderr(), "tscheck: ", 0)
	}

	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFileName)
	}
	if err != nil {
		return usageErrorf("%v", err)
	}
	if cfg.Path != "" {
		o.logger.Printf("using %s", cfg.Path)
	}

	env, err := config.ReadEnvFile(o.envFile)
	if err != nil {
		return usageErrorf("%v", err)
	}
	for k, v := range config.ProcessEnv() {
		env[k] = v
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return usageErrorf("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color = config.ColorMode(o.color)
	}
	if flags.Changed("format") {
		cfg.Format = config.Format(o.format)
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if err := cfg.Validate(); err != nil {
		return usageErrorf("%v", err)
	}
	o.cfg = cfg
	return nil
}

func (o *globalOptions) displayOptions() errors.DisplayOptions {
	switch o.cfg.Color {
	case config.ColorAlways:
		return errors.DisplayOptions{Color: true}
	case config.ColorNever:
		return errors.DisplayOptions{Color: false}
	}
	return errors.DisplayOptions{Color: !color.NoColor}
}
