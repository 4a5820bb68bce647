// Package renderer turns comparison results into markdown documents
// for the terminal.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/kcyang/pcf"
	"github.com/kcyang/pcf/date"
)

// Comparison renders the comparison of one fund across two dates:
// counts, the full holdings table sorted by current weight, the new
// and liquidated positions, and the five largest moves.
func Comparison(table pcf.ComparisonTable, s pcf.Summary, fundCode string, on, prev date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("PCF comparison %s: %s vs %s", fundCode, on, prev))

	doc.Table(md.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Instruments", strconv.Itoa(s.Total)},
			{"New", strconv.Itoa(s.New)},
			{"Liquidated", strconv.Itoa(s.Liquidated)},
			{"Increased", strconv.Itoa(s.Increased)},
			{"Decreased", strconv.Itoa(s.Decreased)},
			{"Unchanged", strconv.Itoa(s.Unchanged)},
		},
	})

	doc.H2(fmt.Sprintf("Holdings (%d, by current weight)", s.Total))
	doc.Table(rowsTable(table))

	if len(s.NewRows) > 0 {
		doc.H2(fmt.Sprintf("New positions (%d)", len(s.NewRows)))
		doc.Table(rowsTable(s.NewRows))
	}
	if len(s.LiquidatedRows) > 0 {
		doc.H2(fmt.Sprintf("Liquidated positions (%d)", len(s.LiquidatedRows)))
		doc.Table(rowsTable(s.LiquidatedRows))
	}
	if len(s.TopShareMoves) > 0 {
		doc.H2("Largest share changes (excluding new/liquidated)")
		doc.Table(rowsTable(s.TopShareMoves))
	}
	if len(s.TopWeightMoves) > 0 {
		doc.H2("Largest weight changes")
		doc.Table(rowsTable(s.TopWeightMoves))
	}

	return doc.String()
}

func rowsTable(rows []pcf.ComparisonRow) md.TableSet {
	set := md.TableSet{
		Header: []string{"Code", "Name", "Shares", "Weight", "Prev shares", "Prev weight", "Δ shares", "Δ shares %", "Δ weight pts"},
	}
	for _, r := range rows {
		set.Rows = append(set.Rows, []string{
			r.Code,
			r.Name,
			strconv.FormatInt(r.Shares, 10),
			fmt.Sprintf("%.2f%%", r.Weight),
			strconv.FormatInt(r.PrevShares, 10),
			fmt.Sprintf("%.2f%%", r.PrevWeight),
			strconv.FormatInt(r.SharesDelta, 10),
			r.SharesChange.String(),
			r.WeightDelta.StringFixed(2),
		})
	}
	return set
}
