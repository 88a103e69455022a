package models

// DailyConsumptionRecord is one synthesized or stored per-day consumption
// value for a single meter. Synthesized records are recomputed on every
// request and never persisted.
type DailyConsumptionRecord struct {
	ID            int     `json:"id,omitempty"`
	Date          string  `json:"date"` // YYYY-MM-DD
	MeterID       string  `json:"meter_id"`
	MeterLabel    string  `json:"meter_label"`
	AccountNumber string  `json:"account_number"`
	Zone          string  `json:"zone"`
	Level         string  `json:"level"`
	MeterType     string  `json:"meter_type"`
	Consumption   float64 `json:"consumption"`
}

// DayConsumption is a (date, total) pair used by peak/low day reporting and
// trend charts.
type DayConsumption struct {
	Date        string  `json:"date"`
	Consumption float64 `json:"consumption"`
}

// ConsumptionMetrics summarizes a set of dated consumption records.
// When the input has no records (or too few dates to compute a trend) the
// numeric fields are zero and InsufficientData is set; no field is ever
// NaN or infinite.
type ConsumptionMetrics struct {
	TotalConsumption float64        `json:"totalConsumption"`
	AverageDaily     float64        `json:"averageDaily"`
	PeakDay          DayConsumption `json:"peakDay"`
	LowDay           DayConsumption `json:"lowDay"`
	Trend            string         `json:"trend"` // up, down or stable
	TrendPercentage  float64        `json:"trendPercentage"`
	ActiveMeters     int            `json:"activeMeters"`
	TotalMeters      int            `json:"totalMeters"`
	InsufficientData bool           `json:"insufficientData,omitempty"`
}

// Data source markers for daily consumption responses.
const (
	DailySourceStored      = "stored"
	DailySourceSynthesized = "synthesized"
	DailySourceFallback    = "fallback"
)

// DailyConsumptionResponse carries the daily series together with its
// summary metrics and provenance.
type DailyConsumptionResponse struct {
	Records  []DailyConsumptionRecord `json:"records"`
	Metrics  ConsumptionMetrics       `json:"metrics"`
	Source   string                   `json:"source"`
	Degraded bool                     `json:"degraded"`
	Message  string                   `json:"message,omitempty"`
}

// DailyMetricsResponse is the summary metrics with provenance. The embedded
// metrics keep the payload shape identical across the stored, synthesized
// and fallback source paths.
type DailyMetricsResponse struct {
	ConsumptionMetrics
	Source   string `json:"source"`
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

// DailyTrendResponse wraps the per-day trend series with provenance.
type DailyTrendResponse struct {
	Trend    []DayConsumption `json:"trend"`
	Source   string           `json:"source"`
	Degraded bool             `json:"degraded"`
	Message  string           `json:"message,omitempty"`
}

// ZoneBreakdownResponse wraps the per-zone aggregation with provenance.
type ZoneBreakdownResponse struct {
	Zones    []ZoneConsumption `json:"zones"`
	Source   string            `json:"source"`
	Degraded bool              `json:"degraded"`
	Message  string            `json:"message,omitempty"`
}

// TopConsumersResponse wraps the ranked meter list with provenance.
type TopConsumersResponse struct {
	Consumers []TopConsumer `json:"consumers"`
	Source    string        `json:"source"`
	Degraded  bool          `json:"degraded"`
	Message   string        `json:"message,omitempty"`
}

// ZoneConsumption is the aggregate consumption of one zone.
type ZoneConsumption struct {
	Zone        string  `json:"zone"`
	Consumption float64 `json:"consumption"`
}

// TopConsumer is a meter ranked by total consumption over a period.
type TopConsumer struct {
	MeterID          string  `json:"meter_id"`
	MeterLabel       string  `json:"meter_label"`
	AccountNumber    string  `json:"account_number"`
	Zone             string  `json:"zone"`
	Level            string  `json:"level"`
	MeterType        string  `json:"meter_type"`
	TotalConsumption float64 `json:"totalConsumption"`
}
