package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KeywordGrep/internal/grep"
	"KeywordGrep/internal/types"
)

func TestResultRows(t *testing.T) {
	result := types.Result{
		"python":  {"a.txt", "c.txt"},
		"logging": {},
	}

	rows := ResultRows(result, []string{"python", "logging", "python"})

	assert.Equal(t, [][]string{
		{"python", "a.txt\nc.txt"},
		{"logging", NotFound},
	}, rows)
}

func TestPrintReportPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinterWithWriters(&out, &errOut, false)

	report := &grep.Report{
		Strategy: types.StrategyShared,
		Files:    3,
		Workers:  2,
		Elapsed:  1500 * time.Millisecond,
		Result: types.Result{
			"python": {"data/a.txt"},
			"event":  {},
		},
		Diagnostics: []types.Diagnostic{
			{Kind: types.FileReadFailure, Path: "data/x.txt", Message: "permission denied"},
		},
	}

	require.NoError(t, p.PrintReport("Shared workers", report, []string{"python", "event"}))

	assert.Contains(t, out.String(), "=== Shared workers ===")
	assert.Contains(t, out.String(), "data/a.txt")
	assert.Contains(t, out.String(), NotFound)
	assert.Contains(t, out.String(), "[shared] files=3 workers=2 elapsed=1.5000s")
	assert.Contains(t, errOut.String(), "[WARN] data/x.txt: permission denied")
}

func TestPrinterMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinterWithWriters(&out, &errOut, false)

	p.Success("results match")
	p.Error("results differ")

	assert.Equal(t, "[OK] results match\n", out.String())
	assert.Equal(t, "[ERROR] results differ\n", errOut.String())
}

func TestResolveColorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(true))
}
