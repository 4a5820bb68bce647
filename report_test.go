package pcf

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kcyang/pcf/date"
)

func TestRowHighlight(t *testing.T) {
	tests := []struct {
		name string
		row  ComparisonRow
		want Highlight
	}{
		{
			name: "new position",
			row:  ComparisonRow{SharesChange: ShareChange{Kind: ChangeNew}, SharesDelta: 1000},
			want: HighlightNew,
		},
		{
			// impossible in real data, but the new rule must win on priority
			name: "new with negative delta",
			row:  ComparisonRow{SharesChange: ShareChange{Kind: ChangeNew}, SharesDelta: -1},
			want: HighlightNew,
		},
		{
			name: "reduced",
			row:  ComparisonRow{SharesChange: Numeric(-10), SharesDelta: -100},
			want: HighlightReduced,
		},
		{
			name: "liquidated counts as reduced",
			row:  ComparisonRow{SharesChange: ShareChange{Kind: ChangeLiquidated}, SharesDelta: -500},
			want: HighlightReduced,
		},
		{
			name: "surge above threshold",
			row:  ComparisonRow{SharesChange: Numeric(30.01), SharesDelta: 300},
			want: HighlightSurge,
		},
		{
			name: "exactly at threshold is not a surge",
			row:  ComparisonRow{SharesChange: Numeric(30), SharesDelta: 300},
			want: HighlightNone,
		},
		{
			name: "small increase",
			row:  ComparisonRow{SharesChange: Numeric(5), SharesDelta: 50},
			want: HighlightNone,
		},
		{
			name: "unchanged",
			row:  ComparisonRow{SharesChange: Numeric(0)},
			want: HighlightNone,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RowHighlight(tc.row); got != tc.want {
				t.Errorf("RowHighlight() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	table := ComparisonTable{
		{
			Code: "2330", Name: "台積電",
			Shares: 150, Weight: 25.5, PrevShares: 100, PrevWeight: 20.1,
			SharesDelta: 50, SharesChange: Numeric(50),
			WeightDelta: decimal.NewFromFloat(5.4),
		},
		{
			Code: "2317", Name: "鴻海",
			Shares: 1000, Weight: 10, PrevShares: 0, PrevWeight: 0,
			SharesDelta: 1000, SharesChange: ShareChange{Kind: ChangeNew},
			WeightDelta: decimal.NewFromInt(10),
		},
		{
			Code: "2881", Name: "富邦金",
			Shares: 0, Weight: 0, PrevShares: 500, PrevWeight: 5,
			SharesDelta: -500, SharesChange: ShareChange{Kind: ChangeLiquidated},
			WeightDelta: decimal.NewFromInt(-5),
		},
	}

	dir := t.TempDir()
	path, err := WriteReport(table, "49YTW", date.New(2024, 3, 15), dir)
	if err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}
	if want := filepath.Join(dir, "PCF_Comparison_49YTW_20240315.xlsx"); path != want {
		t.Errorf("WriteReport() path = %q, want %q", path, want)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening report: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading report sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("report has %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "股票代號" || rows[0][8] != "持股權重變化(%)" {
		t.Errorf("header = %v, want the fixed column captions", rows[0])
	}
	if rows[1][0] != "2330" || rows[1][7] != "50" {
		t.Errorf("row 2 = %v, want 2330 with a numeric share change", rows[1])
	}
	if rows[2][7] != NewLabel {
		t.Errorf("row 3 change = %q, want %q", rows[2][7], NewLabel)
	}
	if rows[3][7] != LiquidatedLabel {
		t.Errorf("row 4 change = %q, want %q", rows[3][7], LiquidatedLabel)
	}

	// highlighted rows carry a style, plain rows do not; the style
	// spans the whole row
	newStyle, err := f.GetCellStyle(sheetName, "A3")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	if newStyle == 0 {
		t.Error("new-position row has no fill style")
	}
	lastCol, err := f.GetCellStyle(sheetName, "I3")
	if err != nil {
		t.Fatalf("GetCellStyle: %v", err)
	}
	if lastCol != newStyle {
		t.Errorf("row fill not applied to every column: A3=%d I3=%d", newStyle, lastCol)
	}
	liqStyle, _ := f.GetCellStyle(sheetName, "A4")
	if liqStyle == 0 {
		t.Error("liquidated row has no fill style")
	}
	if liqStyle == newStyle {
		t.Error("liquidated row shares the new-position fill, want a different color")
	}
	plain, _ := f.GetCellStyle(sheetName, "A2")
	if plain != 0 {
		t.Errorf("unhighlighted row carries style %d, want none", plain)
	}
}
