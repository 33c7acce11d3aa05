// Package report renders a validation run's findings as the text or
// JSON output the CLI prints, grouped by severity and truncated per
// OutputConfig. Grounded on the teacher's validator/result.go
// (ValidationResult.String/ToJSON/GetIssuesBySeverity), re-targeted
// from NetEX ValidationReportEntry to the canonical engine's
// types.Report/Entry.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/travel-diary/canon-engine/config"
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/types"
)

// FromErrors converts substrate/core-pass errors into a types.Report
// under the given dataset label.
func FromErrors(datasetLabel string, errs []*canonerrors.CanonError) *types.Report {
	r := types.NewReport(datasetLabel)
	for _, e := range errs {
		if e == nil {
			continue
		}
		r.Add(e.ToEntry())
	}
	return r
}

// Render formats a report as either text or JSON per cfg.Format,
// applying cfg.MaxEntries and cfg.GroupBySeverity.
func Render(r *types.Report, cfg config.OutputConfig) (string, error) {
	entries := r.Entries
	truncated := 0
	if cfg.MaxEntries > 0 && len(entries) > cfg.MaxEntries {
		truncated = len(entries) - cfg.MaxEntries
		entries = entries[:cfg.MaxEntries]
	}

	if cfg.Format == "json" {
		b, err := toJSON(r, entries, truncated)
		return string(b), err
	}
	return toText(r, entries, truncated, cfg.GroupBySeverity), nil
}

type jsonReport struct {
	DatasetLabel string           `json:"datasetLabel"`
	TotalIssues  int              `json:"totalIssues"`
	Truncated    int              `json:"truncated,omitempty"`
	HasError     bool             `json:"hasError"`
	CountByRule  map[string]int64 `json:"countByRule"`
	Entries      []types.Entry    `json:"entries"`
	BySeverity   map[string]int   `json:"issuesBySeverity"`
}

func toJSON(r *types.Report, entries []types.Entry, truncated int) ([]byte, error) {
	bySeverity := make(map[string]int)
	for _, e := range r.Entries {
		bySeverity[e.Severity.String()]++
	}

	out := jsonReport{
		DatasetLabel: r.DatasetLabel,
		TotalIssues:  len(r.Entries),
		Truncated:    truncated,
		HasError:     r.HasError(),
		CountByRule:  r.CountByRule,
		Entries:      entries,
		BySeverity:   bySeverity,
	}
	return json.MarshalIndent(out, "", "  ")
}

func toText(r *types.Report, entries []types.Entry, truncated int, groupBySeverity bool) string {
	var b strings.Builder

	if len(r.Entries) == 0 {
		fmt.Fprintf(&b, "%s: validation passed, no issues found\n", r.DatasetLabel)
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %d issue(s) found\n", r.DatasetLabel, len(r.Entries))

	if groupBySeverity {
		writeGrouped(&b, entries)
	} else {
		for _, e := range entries {
			writeEntry(&b, e)
		}
	}

	if truncated > 0 {
		fmt.Fprintf(&b, "... %d further issue(s) omitted (output.maxEntries)\n", truncated)
	}

	return b.String()
}

func writeGrouped(b *strings.Builder, entries []types.Entry) {
	grouped := make(map[types.Severity][]types.Entry)
	for _, e := range entries {
		grouped[e.Severity] = append(grouped[e.Severity], e)
	}

	order := []types.Severity{types.CRITICAL, types.ERROR, types.WARNING, types.INFO}
	for _, sev := range order {
		group := grouped[sev]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n%s (%d)\n", sev.String(), len(group))
		sort.Slice(group, func(i, j int) bool { return group[i].Location.Table < group[j].Location.Table })
		for _, e := range group {
			writeEntry(b, e)
		}
	}
}

func writeEntry(b *strings.Builder, e types.Entry) {
	loc := e.Location.Table
	if e.Location.RowID != nil {
		loc = fmt.Sprintf("%s[%d]", loc, *e.Location.RowID)
	}
	if e.Location.Column != "" {
		loc = fmt.Sprintf("%s.%s", loc, e.Location.Column)
	}
	fmt.Fprintf(b, "  [%s] %s: %s\n", e.Severity.String(), loc, e.Message)
}
