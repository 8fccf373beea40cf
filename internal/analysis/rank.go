package analysis

import (
	"sort"

	"imbalance-report/internal/model"
)

// DefaultTopK is the number of periods shown when no limit is configured.
const DefaultTopK = 5

// TopByAbsVolume returns the k periods with the highest absolute net
// imbalance volume, in descending order. Equal volumes keep ascending
// period order. k <= 0 falls back to DefaultTopK; k beyond the record
// count is clamped.
func TopByAbsVolume(records []model.SettlementPeriodRecord, k int) []model.SettlementPeriodRecord {
	if k <= 0 {
		k = DefaultTopK
	}
	out := make([]model.SettlementPeriodRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AbsVolume() != out[j].AbsVolume() {
			return out[i].AbsVolume() > out[j].AbsVolume()
		}
		return out[i].Period < out[j].Period
	})
	if k > len(out) {
		k = len(out)
	}
	return out[:k]
}
