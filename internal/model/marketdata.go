package model

import (
	"math"
	"time"
)

// SystemPricesResponse matches the JSON shape of the Elexon Insights
// system-prices endpoint.
//
// Example:
// {
//   "data": [ ... ]
// }
type SystemPricesResponse struct {
	Data []SystemPriceRow `json:"data"`
}

// SystemPriceRow represents one settlement-period row from the API.
// Price and volume fields are pointers because the API reports null for
// periods that have not settled yet (or on schema drift).
type SystemPriceRow struct {
	SettlementDate   string    `json:"settlementDate"` // YYYY-MM-DD
	SettlementPeriod int       `json:"settlementPeriod"`
	StartTime        time.Time `json:"startTime"`
	CreatedDateTime  time.Time `json:"createdDateTime"`

	// Prices in GBP/MWh.
	SystemSellPrice *float64 `json:"systemSellPrice"`
	SystemBuyPrice  *float64 `json:"systemBuyPrice"`

	// Net imbalance volume in MWh. Positive means the system is short.
	NetImbalanceVolume *float64 `json:"netImbalanceVolume"`
}

// SettlementPeriodRecord is one normalized half-hour settlement period.
type SettlementPeriodRecord struct {
	SettlementDate  string    `json:"settlement_date"`
	Period          int       `json:"period"`
	StartTime       time.Time `json:"start_time"`
	CreatedDateTime time.Time `json:"created_date_time"`
	TimeLabel       string    `json:"time_label"` // HH:MM of the period start (UTC)
	Hour            int       `json:"hour"`       // 0-23, hour of the period start (UTC)

	SystemSellPrice    float64 `json:"system_sell_price"`
	SystemBuyPrice     float64 `json:"system_buy_price"`
	NetImbalanceVolume float64 `json:"net_imbalance_volume"`

	// ImbalanceCost = NIV x sell price when the system is short,
	// NIV x buy price when it is long.
	ImbalanceCost float64 `json:"imbalance_cost"`
}

func (r SettlementPeriodRecord) AbsVolume() float64 {
	return math.Abs(r.NetImbalanceVolume)
}
