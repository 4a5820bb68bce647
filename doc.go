// Package pcf downloads a fund's daily portfolio composition file
// (PCF) from the EZMoney endpoint, finds the matching file for the
// nearest prior business day, and computes the per-instrument share
// and weight changes between the two.
//
// The pipeline is strictly sequential: dates, retrieval, extraction,
// comparison, report. Each stage only consumes the output of the
// previous one.
package pcf
