package report

import (
	"bytes"
	"fmt"
	"os"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// BuildSummaryPDF renders a one-page PDF with the day summary and the
// top periods table.
func BuildSummaryPDF(sum analysis.DaySummary, top []model.SettlementPeriodRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Daily Imbalance Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Settlement date: %s", sum.SettlementDate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Settlement periods: %d", sum.Count))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total imbalance cost: %.2f GBP", sum.TotalImbalanceCost))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("System sell price (GBP/MWh): min %.2f / mean %.2f / max %.2f",
		sum.MinSellPrice, sum.MeanSellPrice, sum.MaxSellPrice))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Peak half hour: period %d (hour %d, abs NIV %.2f MWh)",
		sum.PeakPeriod, sum.PeakPeriodHour, sum.PeakPeriodVolume))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Peak hour by summed abs NIV: %02d:00 UTC (%.2f MWh)",
		sum.PeakHour, sum.PeakHourAbsVolume))
	pdf.Ln(5)
	if len(sum.MissingPeriods) > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Missing periods: %v", sum.MissingPeriods))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Top periods table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Period", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Start", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "NIV (MWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Cost (GBP)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range top {
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", r.Period), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, r.TimeLabel, "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", r.NetImbalanceVolume), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", r.ImbalanceCost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSummaryPDF writes the summary PDF to disk.
func WriteSummaryPDF(path string, sum analysis.DaySummary, top []model.SettlementPeriodRecord) error {
	raw, err := BuildSummaryPDF(sum, top)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
