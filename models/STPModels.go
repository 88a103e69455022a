package models

import "time"

// STP financial constants: tanker discharge income per trip and treated
// effluent (TSE) saving per cubic metre, both in OMR.
const (
	STPTankerIncomeOMR = 5.0
	STPTSESavingOMR    = 0.45
)

// STPRecord is one day of sewage treatment plant operations from the
// stp_operations table. Financial columns can be null in the database; the
// repository derives them from the operational figures when missing.
type STPRecord struct {
	ID                   int       `json:"id"`
	OperationDate        string    `json:"operation_date"` // YYYY-MM-DD
	TotalInletSewage     float64   `json:"total_inlet_sewage"`
	TSEWaterToIrrigation float64   `json:"tse_water_to_irrigation"`
	TankersDischarged    int       `json:"tankers_discharged"`
	IncomeFromTankers    float64   `json:"income_from_tankers"`
	SavingFromTSE        float64   `json:"saving_from_tse"`
	TotalSavingIncome    float64   `json:"total_saving_income"`
	CreatedAt            time.Time `json:"created_at,omitempty"`
}

// DeriveFinancials fills any zero financial field from the operational
// figures using the standard tariffs.
func (r *STPRecord) DeriveFinancials() {
	if r.IncomeFromTankers == 0 {
		r.IncomeFromTankers = float64(r.TankersDischarged) * STPTankerIncomeOMR
	}
	if r.SavingFromTSE == 0 {
		r.SavingFromTSE = r.TSEWaterToIrrigation * STPTSESavingOMR
	}
	if r.TotalSavingIncome == 0 {
		r.TotalSavingIncome = r.IncomeFromTankers + r.SavingFromTSE
	}
}

// STPMonthlySummary aggregates plant operations per calendar month.
type STPMonthlySummary struct {
	Month         string  `json:"month"` // YYYY-MM
	SewageInput   float64 `json:"sewage_input"`
	TSEOutput     float64 `json:"tse_output"`
	TankerTrips   int     `json:"tanker_trips"`
	Income        float64 `json:"income"`
	Savings       float64 `json:"savings"`
	OperatingDays int     `json:"operating_days"`
}

// STPMetrics is the roll-up shown on the STP overview cards.
type STPMetrics struct {
	TotalInletSewage float64 `json:"totalInletSewage"`
	TotalTSE         float64 `json:"totalTSE"`
	TotalTankers     int     `json:"totalTankers"`
	TotalIncome      float64 `json:"totalIncome"`
	TotalSavings     float64 `json:"totalSavings"`
	TotalImpact      float64 `json:"totalImpact"`
	RecordCount      int     `json:"recordCount"`
}

// STPResponse wraps STP listings with degraded-data marking.
type STPResponse struct {
	Records  []STPRecord         `json:"records"`
	Monthly  []STPMonthlySummary `json:"monthly"`
	Metrics  STPMetrics          `json:"metrics"`
	Degraded bool                `json:"degraded"`
	Message  string              `json:"message,omitempty"`
}

// STPMetricsResponse is the metrics roll-up with degraded-data marking.
type STPMetricsResponse struct {
	STPMetrics
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

// STPMonthlyResponse wraps the monthly summaries with degraded-data marking.
type STPMonthlyResponse struct {
	Monthly  []STPMonthlySummary `json:"monthly"`
	Degraded bool                `json:"degraded"`
	Message  string              `json:"message,omitempty"`
}
