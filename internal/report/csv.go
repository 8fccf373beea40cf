package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"imbalance-report/internal/model"
)

// WriteRecordsCSV writes the normalized settlement-period records to a CSV
// file, one row per period.
func WriteRecordsCSV(path string, records []model.SettlementPeriodRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"settlement_date",
		"period",
		"start_time",
		"created_date_time",
		"system_sell_price",
		"system_buy_price",
		"net_imbalance_volume",
		"imbalance_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.SettlementDate,
			strconv.Itoa(r.Period),
			fmtTime(r.StartTime),
			fmtTime(r.CreatedDateTime),
			fmtFloat(r.SystemSellPrice),
			fmtFloat(r.SystemBuyPrice),
			fmtFloat(r.NetImbalanceVolume),
			fmtFloat(r.ImbalanceCost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
