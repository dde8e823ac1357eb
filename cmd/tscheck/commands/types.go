package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tscheck/pkg/config"
	"tscheck/pkg/driver"
	"tscheck/pkg/types"
)

func newTypesCommand(opts *globalOptions) *cobra.Command {
	var widen bool
	cmd := &cobra.Command{
		Use:   "types <file>",
		Short: "Print the symbol table after checking a file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("types requires exactly one file, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			session := driver.NewSession()
			session.SetLogger(opts.logger)
			res, err := session.CheckFile(args[0])
			if err != nil {
				return internalError(err)
			}

			out := cmd.OutOrStdout()
			if opts.cfg.Format == config.FormatJSON {
				report := struct {
					Path        string           `json:"path"`
					Diagnostics []jsonDiagnostic `json:"diagnostics"`
					Symbols     []jsonSymbol     `json:"symbols"`
				}{args[0], toJSONDiagnostics(res.AllErrors()), toJSONSymbols(session.Symbols(), widen)}
				if err := writeJSON(out, report); err != nil {
					return internalError(err)
				}
			} else {
				driver.DisplayResult(out, res, opts.displayOptions())
				for _, sym := range session.Symbols() {
					typ := sym.Type
					if widen {
						typ = types.DeeplyWidenType(typ)
					}
					fmt.Fprintf(out, "%s: %s\n", sym.Name, typ)
				}
			}

			if res.HasErrors() {
				return errDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&widen, "widen", false, "Widen literal types to their base primitives")
	return cmd
}
