package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/pkg/document"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/extract"
	"github.com/agentstation/eramap/pkg/reconciler"
)

func walk(t *testing.T) *eramap.Extraction {
	t.Helper()
	w, err := extract.NewWalker(extract.DefaultConfig())
	require.NoError(t, err)
	records, stats := w.Walk(context.Background(), []document.Node{
		document.Heading(2, "北魏"),
		document.Table(
			document.Row{"年號", "起訖"},
			document.Row{"神䴥", "428年－431年"},
			document.Row{"登國", "386年－396年"},
		),
	})
	return &eramap.Extraction{Source: "file", Records: records, Stats: stats}
}

func TestWriteReconciled(t *testing.T) {
	x := walk(t)
	r, err := reconciler.New()
	require.NoError(t, err)
	rec, err := r.Reconcile(context.Background(),
		[]eras.Entry{{Regime: "北魏", Era: "神麚"}, {Regime: "北魏", Era: "始光"}},
		x.Records,
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &eramap.Result{
		Extraction:     x,
		Reconciliation: rec,
		Output:         rec.Output(),
	}))

	out := buf.String()
	assert.Contains(t, out, "# Era extraction report")
	assert.Contains(t, out, "Source: file")
	assert.Contains(t, out, "Regime")
	assert.Contains(t, out, "header_label")
	assert.Contains(t, out, "北魏/神麚")
	assert.Contains(t, out, "神䴥")
	assert.Contains(t, out, "Missing (1)")
	assert.Contains(t, out, "北魏/始光")
	assert.Contains(t, out, "北魏/登國")
}

func TestWriteDegraded(t *testing.T) {
	x := walk(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &eramap.Result{
		Extraction:     x,
		Degraded:       true,
		DegradedReason: errors.NewReferenceError("src/regime.rs", os.ErrNotExist),
		Output:         x.Records,
		DryRun:         true,
	}))

	out := buf.String()
	assert.Contains(t, out, "Reconciliation skipped")
	assert.Contains(t, out, "src/regime.rs")
	assert.Contains(t, out, "Dry run")
	assert.NotContains(t, out, "## Reconciliation")
}

func TestWriteRejectsNil(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	x := walk(t)
	require.NoError(t, WriteFile(path, &eramap.Result{Extraction: x, Degraded: true, Output: x.Records}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "authoritative list is empty")
}
