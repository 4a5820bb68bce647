package pcf

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Markers locating the holdings table inside the loosely structured
// PCF export. The header caption and the section captions below the
// table are the only stable anchors the file offers.
const (
	headerMarker = "股票代號" // instrument code column caption
	cashMarker   = "現金"   // cash section, ends the table
	totalMarker  = "合計"   // totals section, ends the table
)

// codePattern is the shape of a true instrument code: exactly four digits.
var codePattern = regexp.MustCompile(`^\d{4}$`)

// ErrHeaderNotFound reports that the workbook contains no recognizable
// holdings table.
var ErrHeaderNotFound = errors.New("holdings table header not found")

// Holding is one row of a fund's portfolio table on a given date.
type Holding struct {
	Code   string
	Name   string
	Shares int64
	Weight float64 // percent of the fund
}

// Holdings is the ordered list of holdings extracted from one PCF
// workbook. Duplicate codes are kept as-is; merging is last-write-wins
// by construction in byCode.
type Holdings []Holding

// byCode builds a code-keyed map; on duplicate codes the last row wins.
func (hs Holdings) byCode() map[string]Holding {
	m := make(map[string]Holding, len(hs))
	for _, h := range hs {
		m[h.Code] = h
	}
	return m
}

// Extract parses a PCF workbook into holdings.
//
// The workbook is read as an untyped grid, with no assumption about
// the header position or row count. The first row containing
// headerMarker anchors the table; rows after it belong to it until the
// first terminal row: blank first cell, a cash or totals caption, or a
// first cell that is not a four digit code. If no terminal row exists
// the table runs to the end of the grid. In-range rows with fewer than
// four populated cells are skipped, not treated as terminal. A table
// with zero rows is legitimate.
func Extract(raw []byte) (Holdings, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot open PCF workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("PCF workbook has no sheets: %w", ErrHeaderNotFound)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}

	header := headerIndex(rows)
	if header < 0 {
		return nil, ErrHeaderNotFound
	}

	end := len(rows)
	for i := header + 1; i < len(rows); i++ {
		if isTerminal(rows[i]) {
			end = i
			break
		}
	}

	var holdings Holdings
	for _, row := range rows[header+1 : end] {
		if len(row) < 4 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		holdings = append(holdings, Holding{
			Code:   strings.TrimSpace(row[0]),
			Name:   strings.TrimSpace(row[1]),
			Shares: parseShares(row[2]),
			Weight: parseWeight(row[3]),
		})
	}
	return holdings, nil
}

// headerIndex returns the index of the first row with a cell
// containing the header marker, or -1.
func headerIndex(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if strings.Contains(cell, headerMarker) {
				return i
			}
		}
	}
	return -1
}

// isTerminal reports whether a row ends the holdings table.
func isTerminal(row []string) bool {
	first := ""
	if len(row) > 0 {
		first = strings.TrimSpace(row[0])
	}
	if first == "" {
		return true
	}
	if strings.Contains(first, cashMarker) || strings.Contains(first, totalMarker) {
		return true
	}
	return !codePattern.MatchString(first)
}

// parseShares reads a share count like "7,459,000". Anything that is
// not a plain non-negative integer after stripping thousands
// separators counts as zero.
func parseShares(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseWeight reads a weight like "7.05%". A cell without the percent
// sign yields zero; only true weight cells carry the sign in the
// upstream export.
func parseWeight(s string) float64 {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0
	}
	return v
}
