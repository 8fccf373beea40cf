package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []model.SettlementPeriodRecord {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.SettlementPeriodRecord, 0, 4)
	vols := []float64{10, -30, 20, -5}
	for i, v := range vols {
		start := day.Add(time.Duration(i) * 30 * time.Minute)
		cost := v * 50
		records = append(records, model.SettlementPeriodRecord{
			SettlementDate:     "2024-02-01",
			Period:             i + 1,
			StartTime:          start,
			CreatedDateTime:    start.Add(time.Hour),
			TimeLabel:          start.Format("15:04"),
			Hour:               start.Hour(),
			SystemSellPrice:    50,
			SystemBuyPrice:     50,
			NetImbalanceVolume: v,
			ImbalanceCost:      cost,
		})
	}
	return records
}

func TestConsoleReport(t *testing.T) {
	records := sampleRecords()
	sum := analysis.Summarize(records)
	top := analysis.TopByAbsVolume(records, 2)

	var buf bytes.Buffer
	NewConsoleWriter(&buf).Report(sum, top)

	out := buf.String()
	assert.Contains(t, out, "Settlement date 2024-02-01")
	assert.Contains(t, out, "Total daily imbalance cost")
	assert.Contains(t, out, "Top 2 periods")
	// Period 2 has the largest |NIV|.
	assert.Contains(t, out, "-30.00")
}

func TestConsoleReport_EmptyTop(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleWriter(&buf).Report(analysis.DaySummary{}, nil)
	assert.NotContains(t, buf.String(), "Top")
}

func TestBuildChartsXLSX(t *testing.T) {
	records := sampleRecords()
	raw, err := BuildChartsXLSX("2024-02-01", records)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), dataSheet)
	assert.Contains(t, f.GetSheetList(), chartsSheet)

	label, err := f.GetCellValue(dataSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "00:00", label)

	cost, err := f.GetCellValue(dataSheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "-1500", cost)
}

func TestWriteChartsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.xlsx")
	require.NoError(t, WriteChartsXLSX(path, "2024-02-01", sampleRecords()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildSummaryPDF(t *testing.T) {
	records := sampleRecords()
	sum := analysis.Summarize(records)
	raw, err := BuildSummaryPDF(sum, analysis.TopByAbsVolume(records, 3))
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestWriteRecordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	records := sampleRecords()
	require.NoError(t, WriteRecordsCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, "settlement_date", rows[0][0])
	assert.Equal(t, "2", rows[2][1])
	assert.Equal(t, "-1500.000000", rows[2][7])
}
