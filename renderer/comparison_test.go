package renderer

import (
	"strings"
	"testing"

	"github.com/kcyang/pcf"
	"github.com/kcyang/pcf/date"
)

func TestComparison(t *testing.T) {
	current := pcf.Holdings{
		{Code: "2330", Name: "台積電", Shares: 150, Weight: 25},
		{Code: "2317", Name: "鴻海", Shares: 1000, Weight: 10},
	}
	previous := pcf.Holdings{
		{Code: "2330", Name: "台積電", Shares: 100, Weight: 20},
		{Code: "2881", Name: "富邦金", Shares: 500, Weight: 5},
	}
	table := pcf.Compare(current, previous)
	out := Comparison(table, pcf.Summarize(table), "49YTW", date.New(2024, 3, 15), date.New(2024, 3, 14))

	for _, want := range []string{
		"PCF comparison 49YTW: 2024-03-15 vs 2024-03-14",
		"Instruments",
		"New positions (1)",
		"Liquidated positions (1)",
		"Largest share changes",
		"2330",
		"台積電",
		pcf.NewLabel,
		pcf.LiquidatedLabel,
		"50.00", // 100 -> 150 shares
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Comparison() output missing %q\n%s", want, out)
		}
	}
}
