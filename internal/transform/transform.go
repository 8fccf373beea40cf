package transform

import (
	"errors"
	"fmt"
	"sort"

	"imbalance-report/internal/model"
)

// ErrSchemaMismatch is returned when no row in the response carries the
// fields the pipeline needs. It indicates an API schema change rather than
// a partially settled day.
var ErrSchemaMismatch = errors.New("response rows are missing expected fields")

// Normalize turns raw API rows into settlement-period records.
//
// A row is dropped when it is missing the net imbalance volume or the price
// the cost convention needs: the sell price for a short system, the buy
// price for a long one (a balanced period needs either). The other side may
// be null and is carried as zero. Duplicate start times and duplicate
// (settlement date, period) pairs, both of which appear when a day was
// completed from adjacent settlement dates, collapse to the first
// occurrence. The
// result is sorted by start time, which on a normal day is also ascending
// period order.
func Normalize(resp *model.SystemPricesResponse) ([]model.SettlementPeriodRecord, error) {
	if resp == nil || len(resp.Data) == 0 {
		return nil, nil
	}

	seenStart := map[string]bool{}
	seenPeriod := map[string]bool{}
	records := make([]model.SettlementPeriodRecord, 0, len(resp.Data))
	for _, row := range resp.Data {
		if row.SettlementPeriod <= 0 || row.StartTime.IsZero() {
			continue
		}
		if row.NetImbalanceVolume == nil || !hasNeededPrice(row) {
			continue
		}
		startKey := row.StartTime.UTC().Format("2006-01-02T15:04")
		periodKey := fmt.Sprintf("%s|%d", row.SettlementDate, row.SettlementPeriod)
		if seenStart[startKey] || seenPeriod[periodKey] {
			continue
		}
		seenStart[startKey] = true
		seenPeriod[periodKey] = true

		start := row.StartTime.UTC()
		rec := model.SettlementPeriodRecord{
			SettlementDate:     row.SettlementDate,
			Period:             row.SettlementPeriod,
			StartTime:          start,
			CreatedDateTime:    row.CreatedDateTime,
			TimeLabel:          start.Format("15:04"),
			Hour:               start.Hour(),
			SystemSellPrice:    deref(row.SystemSellPrice),
			SystemBuyPrice:     deref(row.SystemBuyPrice),
			NetImbalanceVolume: *row.NetImbalanceVolume,
		}
		rec.ImbalanceCost = imbalanceCost(rec)
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%d rows, none usable: %w", len(resp.Data), ErrSchemaMismatch)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartTime.Before(records[j].StartTime)
	})
	return records, nil
}

// hasNeededPrice reports whether the row carries the price side the NIV
// sign convention reads.
func hasNeededPrice(row model.SystemPriceRow) bool {
	niv := *row.NetImbalanceVolume
	switch {
	case niv > 0:
		return row.SystemSellPrice != nil
	case niv < 0:
		return row.SystemBuyPrice != nil
	default:
		return row.SystemSellPrice != nil || row.SystemBuyPrice != nil
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// imbalanceCost applies the NIV sign convention: a short system (NIV > 0)
// settles at the system sell price, a long system at the system buy price.
func imbalanceCost(r model.SettlementPeriodRecord) float64 {
	switch {
	case r.NetImbalanceVolume > 0:
		return r.NetImbalanceVolume * r.SystemSellPrice
	case r.NetImbalanceVolume < 0:
		return r.NetImbalanceVolume * r.SystemBuyPrice
	default:
		return 0
	}
}
