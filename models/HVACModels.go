package models

import "time"

// HVAC maintenance statuses.
const (
	HVACStatusCompleted = "Completed"
	HVACStatusOngoing   = "Ongoing"
	HVACStatusPending   = "Pending"
	HVACStatusQuoted    = "Quote Submitted"
)

// HVACRecord represents the hvac_tracker table, one maintenance line per
// building/equipment pair.
type HVACRecord struct {
	ID              uint       `gorm:"primaryKey;column:id" json:"id"`
	Building        string     `gorm:"column:building;not null" json:"building"`
	MainSystem      string     `gorm:"column:main_system" json:"main_system"`
	Equipment       string     `gorm:"column:equipment;not null" json:"equipment"`
	PPMVisits       int        `gorm:"column:ppm_visits;default:0" json:"ppm_visits"`
	LastPPMDate     *time.Time `gorm:"column:last_ppm_date" json:"last_ppm_date,omitempty"`
	FindingsSummary string     `gorm:"column:findings_summary" json:"findings_summary,omitempty"`
	QuoteReference  string     `gorm:"column:quote_reference" json:"quote_reference,omitempty"`
	QuoteAmountOMR  float64    `gorm:"column:quote_amount_omr" json:"quote_amount_omr,omitempty"`
	Status          string     `gorm:"column:status;not null;default:'Pending'" json:"status"`
	Notes           string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (HVACRecord) TableName() string {
	return "hvac_tracker"
}

// HVACSummary is the per-status roll-up for the HVAC dashboard.
type HVACSummary struct {
	TotalRecords    int     `json:"totalRecords"`
	Buildings       int     `json:"buildings"`
	Completed       int     `json:"completed"`
	Ongoing         int     `json:"ongoing"`
	Pending         int     `json:"pending"`
	QuoteSubmitted  int     `json:"quoteSubmitted"`
	TotalQuotedOMR  float64 `json:"totalQuotedOMR"`
}
