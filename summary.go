package pcf

import "slices"

// topCount bounds the "largest moves" sections of the summary.
const topCount = 5

// Summary aggregates a comparison table for console reporting.
type Summary struct {
	Total      int
	New        int
	Liquidated int
	Increased  int
	Decreased  int
	Unchanged  int

	NewRows        []ComparisonRow
	LiquidatedRows []ComparisonRow
	TopShareMoves  []ComparisonRow // largest numeric share change, descending
	TopWeightMoves []ComparisonRow // largest weight point change, descending
}

// Summarize derives the console statistics from a comparison table.
// "Unchanged" means the rounded two-decimal share change is exactly
// zero; no tolerance is applied beyond the rounding itself.
func Summarize(table ComparisonTable) Summary {
	s := Summary{Total: len(table)}

	var numeric []ComparisonRow
	for _, row := range table {
		switch row.SharesChange.Kind {
		case ChangeNew:
			s.New++
			s.NewRows = append(s.NewRows, row)
		case ChangeLiquidated:
			s.Liquidated++
			s.LiquidatedRows = append(s.LiquidatedRows, row)
		default:
			numeric = append(numeric, row)
			switch row.SharesChange.Pct.Sign() {
			case 1:
				s.Increased++
			case -1:
				s.Decreased++
			default:
				s.Unchanged++
			}
		}
	}

	slices.SortStableFunc(numeric, func(a, b ComparisonRow) int {
		return b.SharesChange.Pct.Cmp(a.SharesChange.Pct)
	})
	s.TopShareMoves = head(numeric, topCount)

	weights := slices.Clone([]ComparisonRow(table))
	slices.SortStableFunc(weights, func(a, b ComparisonRow) int {
		return b.WeightDelta.Cmp(a.WeightDelta)
	})
	s.TopWeightMoves = head(weights, topCount)

	return s
}

func head(rows []ComparisonRow, n int) []ComparisonRow {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
