package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"KeywordGrep/internal/grep"
	"KeywordGrep/internal/types"
)

// NotFound is shown for a keyword with no matching files.
const NotFound = "not found in any file"

// ResultRows lays out a normalized result as (keyword, files) rows in the
// order the keywords were requested. Repeated keywords appear once.
func ResultRows(result types.Result, keywords []string) [][]string {
	rows := make([][]string, 0, len(result))
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true

		files := NotFound
		if paths := result[kw]; len(paths) > 0 {
			files = strings.Join(paths, "\n")
		}
		rows = append(rows, []string{kw, files})
	}
	return rows
}

// RenderResult writes the result as a two-column table.
func RenderResult(w io.Writer, result types.Result, keywords []string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
	)

	table.Header([]string{"Keyword", "Files"})
	if err := table.Bulk(ResultRows(result, keywords)); err != nil {
		return fmt.Errorf("building result table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering result table: %w", err)
	}
	return nil
}

// PrintReport prints a titled report: the result table, timing and diagnostics.
func (p *Printer) PrintReport(title string, report *grep.Report, keywords []string) error {
	p.Header(title)
	if err := RenderResult(p.out, report.Result, keywords); err != nil {
		return err
	}
	p.Info("[%s] files=%d workers=%d elapsed=%.4fs",
		report.Strategy, report.Files, report.Workers, report.Elapsed.Seconds())

	for _, d := range report.Diagnostics {
		switch d.Kind {
		case types.DirectoryEmpty:
			p.Warning("No text files found in %s", d.Path)
		default:
			p.Warning("%s: %s", d.Path, d.Message)
		}
	}
	return nil
}
