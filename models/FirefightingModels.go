package models

import (
	"time"

	"gorm.io/gorm"
)

// GORM models for the fire safety / PPM module.

// EquipmentType represents the equipment_types table.
type EquipmentType struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	TypeCode    string    `gorm:"column:type_code;not null;uniqueIndex" json:"type_code"`
	TypeName    string    `gorm:"column:type_name;not null" json:"type_name"`
	Category    string    `gorm:"column:category;not null" json:"category"` // Fire Detection | Fire Suppression
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (EquipmentType) TableName() string {
	return "equipment_types"
}

// Equipment status values.
const (
	EquipmentStatusActive      = "Active"
	EquipmentStatusFaulty      = "Faulty"
	EquipmentStatusMaintenance = "Under Maintenance"
	EquipmentStatusInactive    = "Inactive"
)

// Equipment represents the equipment table.
type Equipment struct {
	ID               uint           `gorm:"primaryKey;column:id" json:"id"`
	EquipmentCode    string         `gorm:"column:equipment_code;not null;uniqueIndex" json:"equipment_code"`
	EquipmentName    string         `gorm:"column:equipment_name;not null" json:"equipment_name"`
	EquipmentTypeID  uint           `gorm:"column:equipment_type_id;not null" json:"equipment_type_id"`
	LocationID       uint           `gorm:"column:location_id;not null" json:"location_id"`
	Manufacturer     string         `gorm:"column:manufacturer" json:"manufacturer,omitempty"`
	Model            string         `gorm:"column:model" json:"model,omitempty"`
	SerialNumber     string         `gorm:"column:serial_number" json:"serial_number,omitempty"`
	InstallationDate *time.Time     `gorm:"column:installation_date" json:"installation_date,omitempty"`
	WarrantyExpiry   *time.Time     `gorm:"column:warranty_expiry" json:"warranty_expiry,omitempty"`
	Status           string         `gorm:"column:status;not null;default:'Active'" json:"status"`
	CreatedAt        time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"equipment_type,omitempty"`
	Location      *PPMLocation   `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// PPMLocation represents the ppm_locations table.
type PPMLocation struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	LocationName string    `gorm:"column:location_name;not null" json:"location_name"`
	LocationCode string    `gorm:"column:location_code;not null;uniqueIndex" json:"location_code"`
	Description  string    `gorm:"column:description" json:"description,omitempty"`
	Active       bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PPMLocation) TableName() string {
	return "ppm_locations"
}

// PPM inspection cycle types and statuses.
const (
	PPMTypeQuarterly = "Quarterly"
	PPMTypeBiAnnual  = "Bi-Annual"
	PPMTypeAnnual    = "Annual"

	PPMStatusCompleted = "Completed"
	PPMStatusPending   = "Pending"
	PPMStatusFailed    = "Failed"
)

// PPMRecord represents the ppm_records table, one planned preventive
// maintenance inspection at a location.
type PPMRecord struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	LocationID    uint      `gorm:"column:location_id;not null" json:"location_id"`
	PPMDate       time.Time `gorm:"column:ppm_date;not null" json:"ppm_date"`
	PPMType       string    `gorm:"column:ppm_type;not null" json:"ppm_type"`
	InspectorName string    `gorm:"column:inspector_name;not null" json:"inspector_name"`
	OverallStatus string    `gorm:"column:overall_status;not null;default:'Pending'" json:"overall_status"`
	Notes         string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`

	Location *PPMLocation `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Findings []PPMFinding `gorm:"foreignKey:PPMRecordID" json:"findings,omitempty"`
}

func (PPMRecord) TableName() string {
	return "ppm_records"
}

// Finding severities and statuses.
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"

	FindingStatusOpen       = "Open"
	FindingStatusInProgress = "In Progress"
	FindingStatusClosed     = "Closed"
)

// PPMFinding represents the ppm_findings table.
type PPMFinding struct {
	ID                 uint      `gorm:"primaryKey;column:id" json:"id"`
	PPMRecordID        uint      `gorm:"column:ppm_record_id;not null" json:"ppm_record_id"`
	FindingDescription string    `gorm:"column:finding_description;not null" json:"finding_description"`
	Severity           string    `gorm:"column:severity;not null" json:"severity"`
	Status             string    `gorm:"column:status;not null;default:'Open'" json:"status"`
	RecommendedAction  string    `gorm:"column:recommended_action" json:"recommended_action,omitempty"`
	SparePartsRequired string    `gorm:"column:spare_parts_required" json:"spare_parts_required,omitempty"`
	EstimatedCost      float64   `gorm:"column:estimated_cost" json:"estimated_cost,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updated_at"`

	PPMRecord *PPMRecord `gorm:"foreignKey:PPMRecordID" json:"ppm_record,omitempty"`
}

func (PPMFinding) TableName() string {
	return "ppm_findings"
}

// FirefightingStats feeds the fire safety dashboard cards. ComplianceRate is
// completed PPMs over total PPMs, zero when nothing is scheduled.
type FirefightingStats struct {
	TotalEquipment      int     `json:"totalEquipment"`
	ActiveEquipment     int     `json:"activeEquipment"`
	FaultyEquipment     int     `json:"faultyEquipment"`
	CriticalFindings    int     `json:"criticalFindings"`
	OpenFindings        int     `json:"openFindings"`
	PendingPPMs         int     `json:"pendingPPMs"`
	ComplianceRate      float64 `json:"complianceRate"`
	UpcomingInspections int     `json:"upcomingInspections"`
}

// CreateFindingRequest is the payload for recording a new PPM finding.
type CreateFindingRequest struct {
	PPMRecordID        uint    `json:"ppm_record_id" binding:"required"`
	FindingDescription string  `json:"finding_description" binding:"required"`
	Severity           string  `json:"severity" binding:"required"`
	RecommendedAction  string  `json:"recommended_action"`
	SparePartsRequired string  `json:"spare_parts_required"`
	EstimatedCost      float64 `json:"estimated_cost"`
}
