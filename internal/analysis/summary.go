package analysis

import (
	"math"
	"time"

	"imbalance-report/internal/model"
)

// DaySummary is a day-level summary of the normalized settlement periods.
type DaySummary struct {
	SettlementDate string `json:"settlement_date"`

	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`

	Count int `json:"count"`

	MinSellPrice  float64 `json:"min_sell_price"`
	MaxSellPrice  float64 `json:"max_sell_price"`
	MeanSellPrice float64 `json:"mean_sell_price"`

	TotalImbalanceCost float64 `json:"total_imbalance_cost"`

	// PeakPeriod is the single half hour with the highest absolute net
	// imbalance volume.
	PeakPeriod       int     `json:"peak_period"`
	PeakPeriodHour   int     `json:"peak_period_hour"`
	PeakPeriodVolume float64 `json:"peak_period_abs_volume"`

	// PeakHour is the hour of day whose periods sum to the highest total
	// absolute net imbalance volume.
	PeakHour          int     `json:"peak_hour"`
	PeakHourAbsVolume float64 `json:"peak_hour_abs_volume"`

	// MissingPeriods lists gaps in the period sequence of the settlement
	// date itself. A clock-change day legitimately has 46 or 50 periods,
	// so a short day is reported here rather than treated as an error.
	MissingPeriods []int `json:"missing_periods,omitempty"`
}

// Summarize computes the day summary over normalized records.
func Summarize(records []model.SettlementPeriodRecord) DaySummary {
	s := DaySummary{}
	if len(records) == 0 {
		return s
	}
	s.SettlementDate = modalSettlementDate(records)
	s.Count = len(records)
	s.StartUTC = records[0].StartTime
	s.EndUTC = records[len(records)-1].StartTime.Add(30 * time.Minute)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	peakAbs := -1.0
	for _, r := range records {
		sum += r.SystemSellPrice
		if r.SystemSellPrice < minv {
			minv = r.SystemSellPrice
		}
		if r.SystemSellPrice > maxv {
			maxv = r.SystemSellPrice
		}
		s.TotalImbalanceCost += r.ImbalanceCost
		if r.AbsVolume() > peakAbs {
			peakAbs = r.AbsVolume()
			s.PeakPeriod = r.Period
			s.PeakPeriodHour = r.Hour
			s.PeakPeriodVolume = r.AbsVolume()
		}
	}
	s.MinSellPrice = minv
	s.MaxSellPrice = maxv
	s.MeanSellPrice = sum / float64(len(records))

	s.PeakHour, s.PeakHourAbsVolume = peakAbsVolumeHour(records)
	s.MissingPeriods = missingPeriods(records, s.SettlementDate)
	return s
}

// TotalImbalanceCost sums the per-period imbalance cost.
func TotalImbalanceCost(records []model.SettlementPeriodRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.ImbalanceCost
	}
	return total
}

// peakAbsVolumeHour finds the hour of day with the highest summed absolute
// net imbalance volume across its settlement periods. Ties resolve to the
// earlier hour.
func peakAbsVolumeHour(records []model.SettlementPeriodRecord) (int, float64) {
	byHour := map[int]float64{}
	for _, r := range records {
		byHour[r.Hour] += r.AbsVolume()
	}
	bestHour := 0
	bestVol := math.Inf(-1)
	for hour := 0; hour < 24; hour++ {
		if vol, ok := byHour[hour]; ok && vol > bestVol {
			bestHour = hour
			bestVol = vol
		}
	}
	return bestHour, bestVol
}

// modalSettlementDate picks the most common settlement date among records.
// Completed clock-change days carry a few rows filed under adjacent dates.
func modalSettlementDate(records []model.SettlementPeriodRecord) string {
	counts := map[string]int{}
	best := ""
	for _, r := range records {
		counts[r.SettlementDate]++
		if counts[r.SettlementDate] > counts[best] {
			best = r.SettlementDate
		}
	}
	return best
}

// missingPeriods reports gaps in the 1..max period sequence for rows filed
// under the given settlement date.
func missingPeriods(records []model.SettlementPeriodRecord, date string) []int {
	have := map[int]bool{}
	maxPeriod := 0
	for _, r := range records {
		if r.SettlementDate != date {
			continue
		}
		have[r.Period] = true
		if r.Period > maxPeriod {
			maxPeriod = r.Period
		}
	}
	var missing []int
	for p := 1; p <= maxPeriod; p++ {
		if !have[p] {
			missing = append(missing, p)
		}
	}
	return missing
}
