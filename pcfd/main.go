// Command pcfd downloads a fund's daily PCF workbook from EZMoney,
// finds the nearest prior business day with data, and writes a
// highlighted comparison spreadsheet plus a console summary.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kcyang/pcf"
	"github.com/kcyang/pcf/date"
	"github.com/kcyang/pcf/renderer"
)

func main() {
	// .env is optional; settings come from the environment.
	_ = godotenv.Load()

	defaultFund := os.Getenv("PCF_FUND_CODE")
	if defaultFund == "" {
		defaultFund = "49YTW"
	}
	dateFlag := flag.String("date", date.Today().String(), "date of the PCF to compare (YYYY-MM-DD)")
	fundFlag := flag.String("fund", defaultFund, "fund code")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	on, err := date.Parse(*dateFlag)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	res, err := pcf.Run(pcf.Config{
		FundCode:  *fundFlag,
		Date:      on,
		BaseURL:   os.Getenv("PCF_BASE_URL"),
		OutputDir: os.Getenv("PCF_OUTPUT_DIR"),
		Log:       log,
	})
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	if !res.Compared {
		fmt.Println("no prior business day PCF found, comparison skipped")
		return
	}

	printMarkdown(renderer.Comparison(res.Table, res.Summary, *fundFlag, on, res.PreviousDate))
	fmt.Printf("report written to %s\n", res.ReportPath)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, rerr := r.Render(markdown); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(markdown)
}
