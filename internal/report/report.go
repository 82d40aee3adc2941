// Package report renders a markdown diagnostics report for a pipeline run.
package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/eramap"
	"github.com/agentstation/eramap/pkg/errors"
	"github.com/agentstation/eramap/pkg/extract"
	"github.com/agentstation/eramap/pkg/save"
)

// Write renders the report for result to w.
func Write(w io.Writer, result *eramap.Result) error {
	if result == nil || result.Extraction == nil {
		return errors.NewValidationError("result", nil, "cannot be nil")
	}

	doc := md.NewMarkdown(w)
	doc.H1("Era extraction report").LF()

	summary := []string{
		fmt.Sprintf("Source: %s", result.Extraction.Source),
		fmt.Sprintf("Scraped records: %d", len(result.Extraction.Records)),
		fmt.Sprintf("Output records: %d", len(result.Output)),
	}
	if result.DryRun {
		summary = append(summary, "Dry run: output not written")
	}
	switch {
	case result.Degraded && result.DegradedReason != nil:
		summary = append(summary, fmt.Sprintf("Reconciliation skipped: %s", result.DegradedReason))
	case result.Degraded:
		summary = append(summary, "Reconciliation skipped: authoritative list is empty")
	default:
		summary = append(summary, result.Reconciliation.Summary())
	}
	doc.BulletList(summary...).LF()

	writeExtraction(doc, result.Extraction)
	if result.Reconciliation != nil {
		writeReconciliation(doc, result)
	}

	return doc.Build()
}

// WriteFile renders the report to path atomically.
func WriteFile(path string, result *eramap.Result) error {
	var buf bytes.Buffer
	if err := Write(&buf, result); err != nil {
		return err
	}
	return save.WriteFileAtomic(path, &buf)
}

func writeExtraction(doc *md.Markdown, x *eramap.Extraction) {
	doc.H2("Extraction").LF()

	rows := [][]string{}
	for _, regime := range x.Stats.Regimes() {
		rows = append(rows, []string{regime, strconv.Itoa(x.Stats.ByRegime[regime])})
	}
	doc.Table(md.TableSet{
		Header: []string{"Regime", "Eras"},
		Rows:   rows,
	}).LF()

	doc.PlainTextf("Tables attributed: %d, ignored: %d. Stop headings: %d.",
		x.Stats.TablesAttributed, x.Stats.TablesIgnored, x.Stats.Stops).LF()

	if len(x.Stats.Skipped) == 0 {
		return
	}
	reasons := make([]extract.SkipReason, 0, len(x.Stats.Skipped))
	for reason := range x.Stats.Skipped {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	skipped := make([][]string, 0, len(reasons))
	for _, reason := range reasons {
		skipped = append(skipped, []string{string(reason), strconv.Itoa(x.Stats.Skipped[reason])})
	}
	doc.H3("Skipped rows").LF()
	doc.Table(md.TableSet{
		Header: []string{"Reason", "Rows"},
		Rows:   skipped,
	}).LF()
}

func writeReconciliation(doc *md.Markdown, result *eramap.Result) {
	rec := result.Reconciliation
	doc.H2("Reconciliation").LF()

	if len(rec.Events) > 0 {
		rows := make([][]string, 0, len(rec.Events))
		for _, e := range rec.Events {
			rows = append(rows, []string{e.Key.String(), e.Kind.String(), e.Alternate, e.Span.String()})
		}
		doc.H3("Substitutions and fallbacks").LF()
		doc.Table(md.TableSet{
			Header: []string{"Entry", "Kind", "Alternate", "Years"},
			Rows:   rows,
		}).LF()
	}

	if len(rec.Missing) > 0 {
		items := make([]string, 0, len(rec.Missing))
		for _, e := range rec.Missing {
			items = append(items, e.Key().String())
		}
		doc.H3(fmt.Sprintf("Missing (%d)", len(rec.Missing))).LF()
		doc.BulletList(items...).LF()
	}

	if len(rec.Extra) > 0 {
		items := make([]string, 0, len(rec.Extra))
		for _, k := range rec.Extra {
			items = append(items, k.String())
		}
		doc.H3(fmt.Sprintf("Not in the authoritative list (%d)", len(rec.Extra))).LF()
		doc.BulletList(items...).LF()
	}
}
