package main

import (
	"flag"
	"fmt"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/data"
	"imbalance-report/internal/logging"
	"imbalance-report/internal/report"
	"imbalance-report/internal/transform"
)

// Demo:
// - Load a saved Elexon system-prices response from disk
// - Normalize it into settlement-period records
// - Print the daily report and optionally write the chart workbook,
//   without touching the network
func main() {
	dataPath := flag.String("data", "sample_data.json", "Path to a saved system-prices JSON response")
	topK := flag.Int("top-k", analysis.DefaultTopK, "Number of top periods")
	outXLSX := flag.String("out", "", "Optional path to write the chart workbook (e.g. results/charts.xlsx)")
	flag.Parse()

	if err := logging.Setup("info", "console"); err != nil {
		panic(err)
	}

	resp, err := data.LoadSystemPricesJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	if len(resp.Data) == 0 {
		panic("no data in JSON")
	}

	records, err := transform.Normalize(resp)
	if err != nil {
		panic(err)
	}

	sum := analysis.Summarize(records)
	fmt.Printf("Loaded %d rows for %s, %d usable periods\n\n", len(resp.Data), sum.SettlementDate, sum.Count)

	report.NewConsole().Report(sum, analysis.TopByAbsVolume(records, *topK))

	if *outXLSX != "" {
		if err := report.WriteChartsXLSX(*outXLSX, sum.SettlementDate, records); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote charts: %s\n", *outXLSX)
	}
}
