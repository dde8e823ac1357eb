package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tscheck/pkg/config"
	"tscheck/pkg/driver"
	"tscheck/pkg/errors"
	"tscheck/pkg/types"
)

type evalOptions struct {
	prelude  string
	expected string
}

func newEvalCommand(opts *globalOptions) *cobra.Command {
	eo := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Print the type of an expression",
		Long: `Evaluates the type of a single expression. Declarations given with
--prelude are checked first and their bindings are visible to the expression.
With --type the result is also checked for assignability to that type.`,
		Example: `  tscheck eval '1n + 2n'
  tscheck eval --prelude 'let s: string = "a";' 's + 1'
  tscheck eval --type 'number | string' '"x"'`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("eval requires an expression")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts, eo, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVarP(&eo.prelude, "prelude", "p", "", "Declarations checked before the expression")
	cmd.Flags().StringVarP(&eo.expected, "type", "t", "", "Type the expression must be assignable to")
	return cmd
}

type jsonEval struct {
	Type        string           `json:"type,omitempty"`
	Expected    string           `json:"expected,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

func runEval(cmd *cobra.Command, opts *globalOptions, eo *evalOptions, input string) error {
	out := cmd.OutOrStdout()
	display := opts.displayOptions()
	session := driver.NewSession()
	session.SetLogger(opts.logger)
	opts.logger.Printf("evaluating %q", input)

	var diags []errors.TscheckError
	if eo.prelude != "" {
		diags = append(diags, session.CheckString(eo.prelude).AllErrors()...)
	}

	var expected types.Type
	if eo.expected != "" {
		typ, errs := session.ResolveType(eo.expected)
		if len(errs) > 0 {
			errors.DisplayErrors(cmd.ErrOrStderr(), errs, display)
			return usageErrorf("invalid --type %q", eo.expected)
		}
		expected = typ
	}

	res := session.EvalExpression(input)
	diags = append(diags, res.SyntaxErrors...)
	for _, e := range res.TypeErrors {
		diags = append(diags, e)
	}
	if res.Type != nil && expected != nil && !types.Compatible(expected, res.Type) {
		diags = append(diags, errors.NewTypeError(fmt.Sprintf("Type '%s' is not assignable to type '%s'", res.Type, expected)))
	}

	if opts.cfg.Format == config.FormatJSON {
		report := jsonEval{Diagnostics: toJSONDiagnostics(diags)}
		if res.Type != nil {
			report.Type = res.Type.String()
		}
		if expected != nil {
			report.Expected = expected.String()
		}
		if err := writeJSON(out, report); err != nil {
			return internalError(err)
		}
	} else {
		errors.DisplayErrors(out, diags, display)
		if res.Type != nil {
			fmt.Fprintln(out, res.Type)
		}
	}

	if len(diags) > 0 {
		return errDiagnostics
	}
	return nil
}
