package pcf

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kcyang/pcf/date"
)

// Config carries the settings of one run.
type Config struct {
	FundCode  string
	Date      date.Date
	BaseURL   string // empty selects the production endpoint
	OutputDir string // empty selects "output"
	Log       *logrus.Logger
}

// Result is the outcome of one run. Compared is false when no prior
// business day file could be found within the search window; that
// outcome is reported, not fatal, and produces no output file.
type Result struct {
	Compared     bool
	PreviousDate date.Date
	ReportPath   string
	Table        ComparisonTable
	Summary      Summary
}

// Run executes the whole pipeline: fetch the requested date's PCF,
// search backward for the nearest prior business day with data,
// extract both tables, compare them, and write the styled report.
//
// The requested date's file being unavailable is fatal; the whole
// comparison is meaningless without it.
func Run(cfg Config) (*Result, error) {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	client := NewClient(cfg.BaseURL, log)

	current, err := client.Fetch(cfg.FundCode, cfg.Date)
	if err != nil {
		return nil, fmt.Errorf("current PCF for %s on %s unavailable: %w", cfg.FundCode, cfg.Date, err)
	}

	previous, prevDate, err := client.FetchPreviousAvailable(cfg.FundCode, cfg.Date)
	if err != nil {
		log.WithError(err).Warn("no prior-day PCF found, skipping comparison")
		return &Result{}, nil
	}

	currentTable, err := Extract(current)
	if err != nil {
		return nil, fmt.Errorf("cannot parse PCF of %s: %w", cfg.Date, err)
	}
	previousTable, err := Extract(previous)
	if err != nil {
		return nil, fmt.Errorf("cannot parse PCF of %s: %w", prevDate, err)
	}
	log.WithFields(logrus.Fields{
		"current":  len(currentTable),
		"previous": len(previousTable),
	}).Info("extracted holdings")

	table := Compare(currentTable, previousTable)
	path, err := WriteReport(table, cfg.FundCode, cfg.Date, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	log.WithField("path", path).Info("report written")

	return &Result{
		Compared:     true,
		PreviousDate: prevDate,
		ReportPath:   path,
		Table:        table,
		Summary:      Summarize(table),
	}, nil
}
