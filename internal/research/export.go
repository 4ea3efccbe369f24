// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"io"
	"strings"
	"time"

	"audioscout/pkg/types"
)

// csvHeader is the fixed export header. Every cell in the file is
// double-quoted, including numeric ones, so the header is rendered
// through the same quoting path as data rows.
var csvHeader = []string{
	"Keyword",
	"Audiobooks Found",
	"Avg Popularity",
	"Estimated Trends Interest",
	"Popularity Trend",
	"Supply Trend",
	"Status",
}

// WriteCSV renders the snapshot as CSV: one header row plus one row per
// keyword, in snapshot order. Failed rows show "Error" in the count
// column, "-" for the numeric columns, and the captured error text in the
// status column, so "no data due to failure" never reads as a zero.
func WriteCSV(w io.Writer, snapshot types.RunSnapshot) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}
	for _, r := range snapshot {
		if err := writeRow(w, csvRow(r)); err != nil {
			return err
		}
	}
	return nil
}

func csvRow(r types.KeywordResult) []string {
	if r.Failed() {
		status := r.ErrorMessage
		if status == "" {
			status = "Error"
		}
		return []string{r.Keyword, "Error", "-", "-", "-", "-", status}
	}
	return []string{
		r.Keyword,
		fmt.Sprintf("%d", r.ItemCount),
		fmt.Sprintf("%d", r.AvgPopularity),
		fmt.Sprintf("%d", r.DemandScore),
		formatTrend(r.PopularityDelta),
		formatTrend(r.SupplyDelta),
		"OK",
	}
}

// formatTrend renders a signed delta: "+3", "-2", or "0".
func formatTrend(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

// writeRow quotes every cell, doubling embedded quotes.
func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

// ExportFilename returns the CSV filename convention for a run date,
// e.g. "audioscout-keywords-2026-08-26.csv".
func ExportFilename(date time.Time) string {
	return fmt.Sprintf("audioscout-keywords-%s.csv", date.Format("2006-01-02"))
}

// FormatTable writes the ranked results as a human-readable table to w.
func FormatTable(snapshot types.RunSnapshot, w io.Writer) {
	if len(snapshot) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-10s  %-6s  %-6s  %-7s  %-6s  %s\n",
		"Rank", "Keyword", "Supply", "Pop", "Demand", "Opp", "Trend", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, r := range snapshot {
		keyword := r.Keyword
		if len(keyword) > 30 {
			keyword = keyword[:27] + "..."
		}
		if r.Failed() {
			fmt.Fprintf(w, "%-4d  %-30s  %-10s  %-6s  %-6s  %-7s  %-6s  %s\n",
				i+1, keyword, "Error", "-", "-", "-", "-", r.ErrorMessage)
			continue
		}
		fmt.Fprintf(w, "%-4d  %-30s  %-10d  %-6d  %-6d  %-7d  %-6s  %s\n",
			i+1, keyword, r.ItemCount, r.AvgPopularity, r.DemandScore,
			OpportunityScore(r), formatTrend(r.PopularityDelta), "OK")
	}

	fmt.Fprintf(w, "\n%d keywords\n", len(snapshot))
}
