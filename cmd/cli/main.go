package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/config"
	"imbalance-report/internal/data"
	"imbalance-report/internal/logging"
	"imbalance-report/internal/report"
	"imbalance-report/internal/transform"

	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "report":
		cmdReport(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli report --date 2024-03-31 [--config examples/config.yaml] [--out results]")
	fmt.Println("  cli rank --data saved_response.json [--top-k 5]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - report fetches Elexon system prices for one settlement date and writes")
	fmt.Println("    charts.xlsx, summary.pdf and records.csv under the output directory")
	fmt.Println("  - rank prints the top periods by absolute net imbalance volume from a")
	fmt.Println("    saved response file")
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	date := fs.String("date", "", "Settlement date YYYY-MM-DD (overrides config)")
	topK := fs.Int("top-k", 0, "Number of top periods (overrides config)")
	outDir := fs.String("out", "", "Output directory (overrides config)")
	_ = fs.Parse(args)

	var cfg *config.Config
	var err error
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fatal(err)
		}
	} else {
		cfg = config.Default()
	}
	if *date != "" {
		cfg.Date = *date
	}
	if *topK > 0 {
		cfg.TopK = *topK
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		fatal(err)
	}

	client := data.NewElexonClient(cfg.ElexonBaseURL)
	resp, err := client.FetchDay(cfg.Date, cfg.CompleteDay)
	if err != nil {
		fatal(err)
	}

	records, err := transform.Normalize(resp)
	if err != nil {
		fatal(err)
	}

	sum := analysis.Summarize(records)
	top := analysis.TopByAbsVolume(records, cfg.TopK)
	report.NewConsole().Report(sum, top)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fatal(err)
	}
	chartsPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("imbalance-%s.xlsx", cfg.Date))
	if err := report.WriteChartsXLSX(chartsPath, cfg.Date, records); err != nil {
		fatal(err)
	}
	pdfPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("imbalance-%s.pdf", cfg.Date))
	if err := report.WriteSummaryPDF(pdfPath, sum, top); err != nil {
		fatal(err)
	}
	csvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("imbalance-%s.csv", cfg.Date))
	if err := report.WriteRecordsCSV(csvPath, records); err != nil {
		fatal(err)
	}

	fmt.Printf("\nWrote %s, %s and %s\n", chartsPath, pdfPath, csvPath)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to a saved system-prices JSON response")
	topK := fs.Int("top-k", analysis.DefaultTopK, "Number of top periods")
	_ = fs.Parse(args)

	if *dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	resp, err := data.LoadSystemPricesJSON(*dataPath)
	if err != nil {
		fatal(err)
	}
	records, err := transform.Normalize(resp)
	if err != nil {
		fatal(err)
	}

	report.NewConsole().Report(analysis.Summarize(records), analysis.TopByAbsVolume(records, *topK))
}

func fatal(err error) {
	log.Error().Err(err).Msg("run failed")
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
