package report

import (
	"bytes"
	"fmt"
	"os"

	"imbalance-report/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet   = "data"
	chartsSheet = "charts"
)

// BuildChartsXLSX renders the two daily plots as embedded line charts over a
// data sheet: system price vs settlement period start, and imbalance cost vs
// settlement period start.
func BuildChartsXLSX(date string, records []model.SettlementPeriodRecord) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", dataSheet)
	if _, err := f.NewSheet(chartsSheet); err != nil {
		return nil, err
	}

	headers := []string{"Period", "Start", "System Sell Price (£/MWh)", "System Buy Price (£/MWh)", "Net Imbalance Volume (MWh)", "Imbalance Cost (£)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(dataSheet, cell, h)
	}
	for i, r := range records {
		row := i + 2
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("A%d", row), r.Period)
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("B%d", row), r.TimeLabel)
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("C%d", row), r.SystemSellPrice)
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("D%d", row), r.SystemBuyPrice)
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("E%d", row), r.NetImbalanceVolume)
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("F%d", row), r.ImbalanceCost)
	}

	last := len(records) + 1
	categories := fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, last)

	if err := addLineChart(f, "A1",
		fmt.Sprintf("System Price on %s", date),
		"£/MWh",
		"System Price",
		categories,
		fmt.Sprintf("%s!$C$2:$C$%d", dataSheet, last),
	); err != nil {
		return nil, err
	}
	if err := addLineChart(f, "A21",
		fmt.Sprintf("Imbalance Cost on %s", date),
		"£",
		"Imbalance Cost",
		categories,
		fmt.Sprintf("%s!$F$2:$F$%d", dataSheet, last),
	); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChartsXLSX writes the chart workbook to disk.
func WriteChartsXLSX(path, date string, records []model.SettlementPeriodRecord) error {
	raw, err := BuildChartsXLSX(date, records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func addLineChart(f *excelize.File, cell, title, yAxis, series, categories, values string) error {
	return f.AddChart(chartsSheet, cell, &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       series,
				Categories: categories,
				Values:     values,
				Marker:     excelize.ChartMarker{Symbol: "x"},
			},
		},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Settlement Period Start Time"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: yAxis}}},
		Dimension: excelize.ChartDimension{
			Width:  960,
			Height: 360,
		},
	})
}
