package models

import "time"

// Contract statuses.
const (
	ContractStatusActive  = "Active"
	ContractStatusExpired = "Expired"
)

// Contract represents the contractor_tracker table, one service contract per
// row.
type Contract struct {
	ID               uint       `gorm:"primaryKey;column:id" json:"id"`
	Contractor       string     `gorm:"column:contractor;not null" json:"contractor"`
	ServiceProvided  string     `gorm:"column:service_provided;not null" json:"service_provided"`
	Status           string     `gorm:"column:status;not null" json:"status"`
	ContractType     string     `gorm:"column:contract_type" json:"contract_type"` // Contract | PO
	StartDate        *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate          *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	AnnualValueOMR   float64    `gorm:"column:annual_value_omr" json:"annual_value_omr"`
	Notes            string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Contract) TableName() string {
	return "contractor_tracker"
}

// ContractorSummary feeds the contractor tracker overview cards.
type ContractorSummary struct {
	TotalContracts   int     `json:"totalContracts"`
	ActiveContracts  int     `json:"activeContracts"`
	ExpiredContracts int     `json:"expiredContracts"`
	TotalAnnualOMR   float64 `json:"totalAnnualOMR"`
	ExpiringSoon     int     `json:"expiringSoon"` // within 90 days
}
