package commands

import (
	"encoding/json"
	"io"

	"tscheck/pkg/driver"
	"tscheck/pkg/errors"
	"tscheck/pkg/types"
)

type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type jsonSymbol struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonFile struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Symbols     []jsonSymbol     `json:"symbols,omitempty"`
}

type jsonReport struct {
	Files  []jsonFile `json:"files"`
	Errors int        `json:"errors"`
}

func toJSONDiagnostics(errs []errors.TscheckError) []jsonDiagnostic {
	out := make([]jsonDiagnostic, 0, len(errs))
	for _, e := range errs {
		pos := e.Pos()
		out = append(out, jsonDiagnostic{
			Kind:    e.Kind(),
			Message: e.Message(),
			Line:    pos.Line,
			Column:  pos.Column,
		})
	}
	return out
}

func toJSONSymbols(syms []driver.Symbol, widen bool) []jsonSymbol {
	out := make([]jsonSymbol, 0, len(syms))
	for _, sym := range syms {
		typ := sym.Type
		if widen {
			typ = types.DeeplyWidenType(typ)
		}
		out = append(out, jsonSymbol{Name: sym.Name, Type: typ.String()})
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONReport(w io.Writer, results []driver.FileResult, showTypes bool) error {
	report := jsonReport{Files: make([]jsonFile, 0, len(results))}
	for _, r := range results {
		file := jsonFile{Path: r.Path, Diagnostics: []jsonDiagnostic{}}
		if r.Err != nil {
			file.Error = r.Err.Error()
			report.Files = append(report.Files, file)
			continue
		}
		file.Diagnostics = toJSONDiagnostics(r.Result.AllErrors())
		report.Errors += len(file.Diagnostics)
		if showTypes {
			file.Symbols = toJSONSymbols(r.Symbols, false)
		}
		report.Files = append(report.Files, file)
	}
	return writeJSON(w, report)
}
