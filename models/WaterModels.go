package models

import (
	"strings"
	"time"
)

// WaterMeter represents one row of the water_meters table. Monthly consumption
// is stored column-per-month the same way the dashboard database lays it out.
type WaterMeter struct {
	ID            int       `json:"id"`
	MeterLabel    string    `json:"meter_label"`
	AccountNumber string    `json:"account_number"`
	Label         string    `json:"label"` // L1, L2, L3, L4 or DC
	Zone          string    `json:"zone"`
	ParentMeter   string    `json:"parent_meter"`
	Type          string    `json:"type"`
	Jan25         float64   `json:"jan_25"`
	Feb25         float64   `json:"feb_25"`
	Mar25         float64   `json:"mar_25"`
	Apr25         float64   `json:"apr_25"`
	May25         float64   `json:"may_25"`
	Jun25         float64   `json:"jun_25"`
	Jul25         float64   `json:"jul_25"`
	Aug25         float64   `json:"aug_25"`
	Sep25         float64   `json:"sep_25"`
	Oct25         float64   `json:"oct_25"`
	Nov25         float64   `json:"nov_25"`
	Dec25         float64   `json:"dec_25"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Hierarchy levels tracked in the distribution chain. DC (direct connection)
// is billed off the main bulk but sits outside the L1->L4 loss chain.
const (
	LevelL1 = "L1"
	LevelL2 = "L2"
	LevelL3 = "L3"
	LevelL4 = "L4"
	LevelDC = "DC"
)

// LossChainLevels is the ordered loss chain, top to bottom.
var LossChainLevels = []string{LevelL1, LevelL2, LevelL3, LevelL4}

// MonthKeys lists the tracked months in chronological order using the
// "2006-01" key format used by the API.
var MonthKeys = []string{
	"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06",
	"2025-07", "2025-08", "2025-09", "2025-10", "2025-11", "2025-12",
}

// MonthColumns maps API month keys onto database column names.
var MonthColumns = map[string]string{
	"2025-01": "jan_25",
	"2025-02": "feb_25",
	"2025-03": "mar_25",
	"2025-04": "apr_25",
	"2025-05": "may_25",
	"2025-06": "jun_25",
	"2025-07": "jul_25",
	"2025-08": "aug_25",
	"2025-09": "sep_25",
	"2025-10": "oct_25",
	"2025-11": "nov_25",
	"2025-12": "dec_25",
}

// MonthValue returns the consumption recorded for the given month key.
// Unknown keys read as zero.
func (m *WaterMeter) MonthValue(key string) float64 {
	switch key {
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
	case "2025-08":
		return m.Aug25
	case "2025-09":
		return m.Sep25
	case "2025-10":
		return m.Oct25
	case "2025-11":
		return m.Nov25
	case "2025-12":
		return m.Dec25
	}
	return 0
}

// TotalForMonths sums the meter's consumption over the given month keys.
func (m *WaterMeter) TotalForMonths(keys []string) float64 {
	var total float64
	for _, key := range keys {
		total += m.MonthValue(key)
	}
	return total
}

// MeterCategory is the closed consumption category derived from the free-text
// type column. The multiplier logic in the daily synthesizer operates on this
// enum rather than on raw substrings.
type MeterCategory int

const (
	CategoryOther MeterCategory = iota
	CategoryCommercial
	CategoryResidential
	CategoryIrrigation
)

func (c MeterCategory) String() string {
	switch c {
	case CategoryCommercial:
		return "Commercial"
	case CategoryResidential:
		return "Residential"
	case CategoryIrrigation:
		return "Irrigation"
	}
	return "Other"
}

// CategorizeMeterType maps a free-text meter type onto a MeterCategory.
// Rules are evaluated in priority order so that a type string matching more
// than one pattern resolves the same way every time:
//  1. contains "Retail" or "Commercial"  -> Commercial
//  2. contains "Residential"             -> Residential
//  3. contains "IRR"                     -> Irrigation
//  4. anything else                      -> Other
func CategorizeMeterType(meterType string) MeterCategory {
	t := strings.ToLower(meterType)
	switch {
	case strings.Contains(t, "retail") || strings.Contains(t, "commercial"):
		return CategoryCommercial
	case strings.Contains(t, "residential"):
		return CategoryResidential
	case strings.Contains(t, "irr"):
		return CategoryIrrigation
	}
	return CategoryOther
}

// Category returns the meter's closed consumption category.
func (m *WaterMeter) Category() MeterCategory {
	return CategorizeMeterType(m.Type)
}

// HierarchyLevelTotal is the derived consumption total for one hierarchy
// level over a month range.
type HierarchyLevelTotal struct {
	Level            string  `json:"level"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	TotalConsumption float64 `json:"total_consumption"`
	MeterCount       int     `json:"meter_count"`
}

// LossSegment is the stage loss between two adjacent hierarchy levels.
// LossVolume can legitimately go negative when metering overlaps; it is
// reported as-is rather than clamped.
type LossSegment struct {
	FromLevel      string  `json:"from_level"`
	ToLevel        string  `json:"to_level"`
	LossVolume     float64 `json:"loss_volume"`
	LossPercentage float64 `json:"loss_percentage"`
}

// HierarchyAnalysis is the result of aggregating a meter set over a period.
type HierarchyAnalysis struct {
	PeriodStart  string                `json:"period_start"`
	PeriodEnd    string                `json:"period_end"`
	ZoneFilter   string                `json:"zone_filter,omitempty"`
	Levels       []HierarchyLevelTotal `json:"levels"`
	LossSegments []LossSegment         `json:"loss_segments"`
	DCTotal      float64               `json:"dc_total"`
	TotalMeters  int                   `json:"total_meters"`
}

// ZoneAnalysis compares a zone's bulk (L2) intake against the individual
// meters inside it. The efficiency figure is the individual/bulk coverage
// ratio the dashboard has always shown for a zone.
type ZoneAnalysis struct {
	Zone             string  `json:"zone"`
	PeriodStart      string  `json:"period_start"`
	PeriodEnd        string  `json:"period_end"`
	BulkTotal        float64 `json:"bulk_total"`
	IndividualTotal  float64 `json:"individual_total"`
	Loss             float64 `json:"loss"`
	LossPercentage   float64 `json:"loss_percentage"`
	Efficiency       float64 `json:"efficiency"`
	BulkMeters       int     `json:"bulk_meters"`
	IndividualMeters int     `json:"individual_meters"`
}

// TypeBreakdown aggregates consumption per raw meter type.
type TypeBreakdown struct {
	Type       string  `json:"type"`
	Total      float64 `json:"total"`
	MeterCount int     `json:"count"`
}

// WaterMetersResponse wraps a meter listing. Degraded is set whenever the
// payload was served from the built-in fallback dataset instead of the live
// database.
type WaterMetersResponse struct {
	Meters   []WaterMeter `json:"meters"`
	Count    int          `json:"count"`
	Degraded bool         `json:"degraded"`
	Message  string       `json:"message,omitempty"`
}

// HierarchyResponse is the hierarchy analysis with degraded-data marking.
// The embedded analysis keeps the payload shape identical whether the data
// came from the live database or the fallback set.
type HierarchyResponse struct {
	HierarchyAnalysis
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

// ZoneAnalysisResponse is a zone analysis with degraded-data marking.
type ZoneAnalysisResponse struct {
	ZoneAnalysis
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

// ZoneListResponse wraps the distinct zone names.
type ZoneListResponse struct {
	Zones    []string `json:"zones"`
	Count    int      `json:"count"`
	Degraded bool     `json:"degraded"`
	Message  string   `json:"message,omitempty"`
}

// TypeBreakdownResponse wraps the per-type consumption aggregation.
type TypeBreakdownResponse struct {
	Breakdown []TypeBreakdown `json:"breakdown"`
	Degraded  bool            `json:"degraded"`
	Message   string          `json:"message,omitempty"`
}
