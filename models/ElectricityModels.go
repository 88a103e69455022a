package models

import "time"

// Cost of one kWh in OMR, the tariff the dashboard has always applied.
const ElectricityRateOMR = 0.025

// ElectricityMeter represents one row of the electricity_meters table
// (energy_meters on older deployments). Month columns cover Aug-24 through
// Jul-25, matching the tracked billing year.
type ElectricityMeter struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number"`
	Zone          string    `json:"zone"`
	Type          string    `json:"type"`
	Aug24         float64   `json:"aug_24"`
	Sep24         float64   `json:"sep_24"`
	Oct24         float64   `json:"oct_24"`
	Nov24         float64   `json:"nov_24"`
	Dec24         float64   `json:"dec_24"`
	Jan25         float64   `json:"jan_25"`
	Feb25         float64   `json:"feb_25"`
	Mar25         float64   `json:"mar_25"`
	Apr25         float64   `json:"apr_25"`
	May25         float64   `json:"may_25"`
	Jun25         float64   `json:"jun_25"`
	Jul25         float64   `json:"jul_25"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// ElectricityMonthKeys lists the tracked billing months in chronological order.
var ElectricityMonthKeys = []string{
	"2024-08", "2024-09", "2024-10", "2024-11", "2024-12",
	"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06", "2025-07",
}

// ElectricityMonthColumns maps month keys onto database column names.
var ElectricityMonthColumns = map[string]string{
	"2024-08": "aug_24",
	"2024-09": "sep_24",
	"2024-10": "oct_24",
	"2024-11": "nov_24",
	"2024-12": "dec_24",
	"2025-01": "jan_25",
	"2025-02": "feb_25",
	"2025-03": "mar_25",
	"2025-04": "apr_25",
	"2025-05": "may_25",
	"2025-06": "jun_25",
	"2025-07": "jul_25",
}

// MonthValue returns the kWh recorded for the given month key.
func (m *ElectricityMeter) MonthValue(key string) float64 {
	switch key {
	case "2024-08":
		return m.Aug24
	case "2024-09":
		return m.Sep24
	case "2024-10":
		return m.Oct24
	case "2024-11":
		return m.Nov24
	case "2024-12":
		return m.Dec24
	case "2025-01":
		return m.Jan25
	case "2025-02":
		return m.Feb25
	case "2025-03":
		return m.Mar25
	case "2025-04":
		return m.Apr25
	case "2025-05":
		return m.May25
	case "2025-06":
		return m.Jun25
	case "2025-07":
		return m.Jul25
	}
	return 0
}

// TotalForMonths sums the meter's consumption over the given month keys.
func (m *ElectricityMeter) TotalForMonths(keys []string) float64 {
	var total float64
	for _, key := range keys {
		total += m.MonthValue(key)
	}
	return total
}

// MonthConsumption is one point of a monthly trend series.
type MonthConsumption struct {
	Month       string  `json:"month"`
	Consumption float64 `json:"consumption"`
}

// ElectricityAnalysis summarizes electricity usage over a month range.
type ElectricityAnalysis struct {
	PeriodStart      string             `json:"period_start"`
	PeriodEnd        string             `json:"period_end"`
	TotalConsumption float64            `json:"total_consumption_kwh"`
	TotalCost        float64            `json:"total_cost_omr"`
	MeterCount       int                `json:"meter_count"`
	TopConsumer      *TopConsumer       `json:"top_consumer,omitempty"`
	MonthlyTrend     []MonthConsumption `json:"monthly_trend"`
	ByType           []TypeBreakdown    `json:"by_type"`
	Degraded         bool               `json:"degraded"`
	Message          string             `json:"message,omitempty"`
}
