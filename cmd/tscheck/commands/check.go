package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tscheck/pkg/config"
	"tscheck/pkg/driver"
	"tscheck/pkg/errors"
	"tscheck/pkg/parser"
	"tscheck/pkg/source"
)

// checkOptions are the flags shared by the root command and `check`.
type checkOptions struct {
	showAST   bool
	showTypes bool
}

func (co *checkOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&co.showAST, "ast", false, "Print the parsed program before checking")
	cmd.Flags().BoolVar(&co.showTypes, "show-types", false, "Print the symbol table of each checked file")
}

func newCheckCommand(opts *globalOptions) *cobra.Command {
	co := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Type check files and directories",
		Long: `Type checks each file independently. Directories are searched with the
include and exclude globs of the project file. "-" reads from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, co, args)
		},
	}
	co.register(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, opts *globalOptions, co *checkOptions, args []string) error {
	cfg := opts.cfg
	out := cmd.OutOrStdout()
	showTypes := co.showTypes || cfg.ShowTypes

	suppressor, err := cfg.Suppressor()
	if err != nil {
		return usageErrorf("%v", err)
	}

	if len(args) == 1 && args[0] == "-" {
		return checkStdin(cmd, opts, co, suppressor)
	}

	paths, err := collectPaths(cfg, args)
	if err != nil {
		return internalError(err)
	}
	if len(paths) == 0 {
		return usageErrorf("no input files")
	}
	opts.logger.Printf("checking %d file(s) with %d worker(s)", len(paths), cfg.Workers)

	if co.showAST {
		for _, path := range paths {
			if err := dumpAST(out, path); err != nil {
				return internalError(err)
			}
		}
	}

	results, stats, err := driver.CheckFiles(cmd.Context(), paths, driver.BatchOptions{
		Workers:    cfg.Workers,
		Suppressor: suppressor,
		Logger:     opts.logger,
	})
	if err != nil {
		return internalError(err)
	}
	opts.logger.Printf("%d checked, %d failed, average %s", stats.CompletedJobs, stats.FailedJobs, stats.AverageTime)

	if cfg.Format == config.FormatJSON {
		if err := writeJSONReport(out, results, showTypes); err != nil {
			return internalError(err)
		}
	} else {
		writeTextReport(out, cmd.ErrOrStderr(), results, showTypes, opts.displayOptions())
	}
	return exitStatus(results)
}

func checkStdin(cmd *cobra.Command, opts *globalOptions, co *checkOptions, suppressor *config.Suppressor) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return internalError(fmt.Errorf("read stdin: %w", err))
	}
	src := source.NewStdinSource(string(content))
	if co.showAST {
		program, _ := parser.ParseSource(src)
		fmt.Fprintln(cmd.OutOrStdout(), program.String())
	}

	session := driver.NewSession()
	session.SetLogger(opts.logger)
	res := driver.Filter(session.CheckSource(src), suppressor)
	results := []driver.FileResult{{Path: src.DisplayPath(), Result: res, Symbols: session.Symbols()}}

	showTypes := co.showTypes || opts.cfg.ShowTypes
	if opts.cfg.Format == config.FormatJSON {
		if err := writeJSONReport(cmd.OutOrStdout(), results, showTypes); err != nil {
			return internalError(err)
		}
	} else {
		writeTextReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, showTypes, opts.displayOptions())
	}
	return exitStatus(results)
}

// collectPaths expands directory arguments with the configured globs. With
// no arguments the project root is searched.
func collectPaths(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		return cfg.Discover(cfg.Root())
	}
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			found, err := cfg.Discover(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
			continue
		}
		// Missing files are reported per file by the batch runner.
		paths = append(paths, arg)
	}
	return paths, nil
}

func dumpAST(w io.Writer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	program, _ := parser.ParseSource(source.FromFile(path, string(content)))
	fmt.Fprintf(w, "// %s\n%s\n", path, program.String())
	return nil
}

func writeTextReport(out, errOut io.Writer, results []driver.FileResult, showTypes bool, display errors.DisplayOptions) {
	total := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "tscheck: %v\n", r.Err)
			continue
		}
		driver.DisplayResult(out, r.Result, display)
		total += len(r.Result.SyntaxErrors) + len(r.Result.TypeErrors)
		if showTypes && len(r.Result.SyntaxErrors) == 0 {
			fmt.Fprintf(out, "%s:\n", r.Result.Source.DisplayPath())
			for _, sym := range r.Symbols {
				fmt.Fprintf(out, "  %s: %s\n", sym.Name, sym.Type)
			}
		}
	}

	summary := color.New(color.FgGreen)
	if total > 0 {
		summary = color.New(color.FgRed, color.Bold)
	}
	if display.Color {
		summary.EnableColor()
	} else {
		summary.DisableColor()
	}
	fmt.Fprintln(out, summary.Sprintf("%d file(s) checked, %d error(s)", len(results), total))
}

// exitStatus returns nil when every file was read and came back clean. A
// path that does not exist is a usage error; any other read failure is
// internal.
func exitStatus(results []driver.FileResult) error {
	code := ExitOK
	for _, r := range results {
		switch {
		case r.Err != nil:
			code = max(code, readErrorCode(r.Err))
		case r.Result.HasErrors() && code == ExitOK:
			code = ExitDiagnostics
		}
	}
	switch code {
	case ExitOK:
		return nil
	case ExitDiagnostics:
		return errDiagnostics
	}
	return &ExitError{Code: code}
}
