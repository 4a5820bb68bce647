package pcf

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// ChangeKind tags a ShareChange value.
type ChangeKind int

const (
	// ChangeNumeric is an ordinary percentage change.
	ChangeNumeric ChangeKind = iota
	// ChangeNew marks a position absent the previous day.
	ChangeNew
	// ChangeLiquidated marks a position fully sold since the previous day.
	ChangeLiquidated
)

// Sentinel labels used wherever a ShareChange is displayed.
const (
	NewLabel        = "NEW"
	LiquidatedLabel = "LIQUIDATED"
)

// ShareChange is the day-over-day change of a share count in percent.
// A position that appears or disappears has no meaningful percentage,
// so the value is a tagged variant rather than a number with string
// sentinels mixed in.
type ShareChange struct {
	Kind ChangeKind
	Pct  decimal.Decimal // meaningful only when Kind is ChangeNumeric
}

// Numeric returns an ordinary change rounded to two decimals.
func Numeric(pct float64) ShareChange {
	return ShareChange{Kind: ChangeNumeric, Pct: decimal.NewFromFloat(pct).Round(2)}
}

// String renders the change the way report columns show it.
func (c ShareChange) String() string {
	switch c.Kind {
	case ChangeNew:
		return NewLabel
	case ChangeLiquidated:
		return LiquidatedLabel
	default:
		return c.Pct.StringFixed(2)
	}
}

// ComparisonRow is one instrument's state across the two dates. An
// absent side contributes zero shares and weight.
type ComparisonRow struct {
	Code       string
	Name       string
	Shares     int64
	Weight     float64
	PrevShares int64
	PrevWeight float64

	SharesDelta  int64
	SharesChange ShareChange
	WeightDelta  decimal.Decimal // weight points, rounded to two decimals
}

// ComparisonTable holds one row per instrument present on either date,
// sorted by descending current weight, then descending previous
// weight, then first-seen order.
type ComparisonTable []ComparisonRow

// Compare merges the holdings of two dates into a comparison table.
//
// The row set is exactly the union of the instrument codes of both
// sides. The display name prefers the current side and falls back to
// the previous one for liquidated positions. A position present on
// neither side with shares (an explicit zero-share row in the source)
// is an ordinary numeric row with value zero, not a sentinel.
func Compare(current, previous Holdings) ComparisonTable {
	cur := current.byCode()
	prev := previous.byCode()

	seen := make(map[string]bool, len(cur)+len(prev))
	codes := make([]string, 0, len(cur)+len(prev))
	for _, h := range current {
		if !seen[h.Code] {
			seen[h.Code] = true
			codes = append(codes, h.Code)
		}
	}
	for _, h := range previous {
		if !seen[h.Code] {
			seen[h.Code] = true
			codes = append(codes, h.Code)
		}
	}

	table := make(ComparisonTable, 0, len(codes))
	for _, code := range codes {
		c, inCurrent := cur[code]
		p := prev[code]

		row := ComparisonRow{
			Code:       code,
			Name:       c.Name,
			Shares:     c.Shares,
			Weight:     c.Weight,
			PrevShares: p.Shares,
			PrevWeight: p.Weight,
		}
		if !inCurrent {
			row.Name = p.Name
		}

		switch {
		case p.Shares == 0 && c.Shares > 0:
			row.SharesChange = ShareChange{Kind: ChangeNew}
			row.SharesDelta = c.Shares
		case c.Shares == 0 && p.Shares > 0:
			row.SharesChange = ShareChange{Kind: ChangeLiquidated}
			row.SharesDelta = -p.Shares
		case p.Shares == 0:
			row.SharesChange = Numeric(0)
		default:
			row.SharesDelta = c.Shares - p.Shares
			row.SharesChange = Numeric(float64(c.Shares-p.Shares) / float64(p.Shares) * 100)
		}
		row.WeightDelta = decimal.NewFromFloat(c.Weight - p.Weight).Round(2)

		table = append(table, row)
	}

	slices.SortStableFunc(table, func(a, b ComparisonRow) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(b.PrevWeight, a.PrevWeight)
	})
	return table
}
