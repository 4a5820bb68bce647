package pcf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kcyang/pcf/date"
)

// sheetName is the single sheet of the comparison workbook.
const sheetName = "PCF比較"

// reportHeader is the fixed column order of the report, with the
// captions of the upstream PCF export.
var reportHeader = []any{
	"股票代號", "股票名稱", "股數", "持股權重", "前日股數", "前日持股權重",
	"股數變化", "股數變化(%)", "持股權重變化(%)",
}

// Highlight is the row-level annotation of the report.
type Highlight int

const (
	HighlightNone    Highlight = iota
	HighlightNew               // yellow: position absent the previous day
	HighlightReduced           // light green: share count went down
	HighlightSurge             // pink: share count grew by more than 30%
)

// surgeThreshold is the numeric share change in percent above which a
// row counts as a surge.
var surgeThreshold = decimal.NewFromInt(30)

// fill colors per highlight.
var highlightColor = map[Highlight]string{
	HighlightNew:     "FFFF00",
	HighlightReduced: "90EE90",
	HighlightSurge:   "FFB6C1",
}

// RowHighlight decides the fill for one row. The rules hold strict
// priority: a new position is always yellow, then any share reduction
// is green, then a surge above the threshold is pink. Liquidated
// positions fall under the reduction rule through their negative
// share delta.
func RowHighlight(row ComparisonRow) Highlight {
	switch {
	case row.SharesChange.Kind == ChangeNew:
		return HighlightNew
	case row.SharesDelta < 0:
		return HighlightReduced
	case row.SharesChange.Kind == ChangeNumeric && row.SharesChange.Pct.GreaterThan(surgeThreshold):
		return HighlightSurge
	default:
		return HighlightNone
	}
}

// WriteReport serializes the comparison table to a styled workbook
// under dir and returns the file path. The highlight decision is made
// per row before serialization; the file is written exactly once.
func WriteReport(table ComparisonTable, fundCode string, on date.Date, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create output directory %q: %w", dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return "", err
	}
	if err := f.SetSheetRow(sheetName, "A1", &reportHeader); err != nil {
		return "", err
	}

	styles := make(map[Highlight]int, len(highlightColor))
	for h, color := range highlightColor {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return "", err
		}
		styles[h] = id
	}

	for i, row := range table {
		n := strconv.Itoa(i + 2) // sheet rows are 1-based, after the header
		cells := []any{
			row.Code,
			row.Name,
			row.Shares,
			row.Weight,
			row.PrevShares,
			row.PrevWeight,
			row.SharesDelta,
			shareChangeCell(row.SharesChange),
			row.WeightDelta.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetName, "A"+n, &cells); err != nil {
			return "", err
		}
		if h := RowHighlight(row); h != HighlightNone {
			if err := f.SetCellStyle(sheetName, "A"+n, "I"+n, styles[h]); err != nil {
				return "", err
			}
		}
	}

	name := fmt.Sprintf("PCF_Comparison_%s_%s.xlsx", fundCode, on.Compact())
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("cannot write report %q: %w", path, err)
	}
	return path, nil
}

// shareChangeCell writes numeric changes as numbers so spreadsheet
// consumers can sort on them, and the sentinels as their labels.
func shareChangeCell(c ShareChange) any {
	if c.Kind == ChangeNumeric {
		return c.Pct.InexactFloat64()
	}
	return c.String()
}
