package services

import (
	"math"
	"testing"

	"backend/models"
)

func rec(date, meterID string, consumption float64) models.DailyConsumptionRecord {
	return models.DailyConsumptionRecord{
		Date:        date,
		MeterID:     meterID,
		Zone:        "Zone_08",
		Consumption: consumption,
	}
}

func TestSummarizePeakAndLowDay(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		rec("2025-01-01", "A", 100),
		rec("2025-01-02", "A", 300),
		rec("2025-01-03", "A", 50),
	}
	m := Summarize(records)

	if m.PeakDay.Date != "2025-01-02" || m.PeakDay.Consumption != 300 {
		t.Errorf("peak = %+v, want 2025-01-02/300", m.PeakDay)
	}
	if m.LowDay.Date != "2025-01-03" || m.LowDay.Consumption != 50 {
		t.Errorf("low = %+v, want 2025-01-03/50", m.LowDay)
	}
	if m.TotalConsumption != 450 {
		t.Errorf("total = %v, want 450", m.TotalConsumption)
	}
	if m.AverageDaily != 150 {
		t.Errorf("average = %v, want 150", m.AverageDaily)
	}
}

func TestSummarizeTiesGoToEarliestDate(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		rec("2025-01-03", "A", 200),
		rec("2025-01-01", "A", 200),
		rec("2025-01-02", "A", 10),
	}
	m := Summarize(records)
	if m.PeakDay.Date != "2025-01-01" {
		t.Errorf("peak tie broken to %s, want earliest 2025-01-01", m.PeakDay.Date)
	}
}

func TestSummarizeSumsAcrossMeters(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		rec("2025-01-01", "A", 40),
		rec("2025-01-01", "B", 60),
		rec("2025-01-02", "A", 10),
		rec("2025-01-02", "B", 20),
	}
	m := Summarize(records)
	if m.PeakDay.Consumption != 100 {
		t.Errorf("peak consumption = %v, want 100 (summed across meters)", m.PeakDay.Consumption)
	}
	if m.TotalMeters != 2 || m.ActiveMeters != 2 {
		t.Errorf("meters = %d/%d, want 2/2", m.ActiveMeters, m.TotalMeters)
	}
}

func trendFor(t *testing.T, firstHalf, secondHalf float64) models.ConsumptionMetrics {
	t.Helper()
	records := []models.DailyConsumptionRecord{
		rec("2025-01-01", "A", firstHalf),
		rec("2025-01-02", "A", secondHalf),
	}
	return Summarize(records)
}

func TestTrendClassificationBoundary(t *testing.T) {
	// Just under the 5% band: stable.
	m := trendFor(t, 1000, 1049.9)
	if m.Trend != "stable" {
		t.Errorf("4.99%% change classified %q, want stable", m.Trend)
	}

	// Exactly 5%: up.
	m = trendFor(t, 1000, 1050)
	if m.Trend != "up" {
		t.Errorf("5%% change classified %q, want up", m.Trend)
	}
	if m.TrendPercentage != 5 {
		t.Errorf("trend percentage = %v, want 5", m.TrendPercentage)
	}

	// Exactly -5%: down, reported as absolute value.
	m = trendFor(t, 1000, 950)
	if m.Trend != "down" {
		t.Errorf("-5%% change classified %q, want down", m.Trend)
	}
	if m.TrendPercentage != 5 {
		t.Errorf("trend percentage = %v, want 5 (absolute)", m.TrendPercentage)
	}
}

func TestTrendZeroFirstHalf(t *testing.T) {
	m := trendFor(t, 0, 100)
	if m.TrendPercentage != 0 {
		t.Errorf("trend percentage = %v, want 0 when first half mean is 0", m.TrendPercentage)
	}
	if m.Trend != "stable" {
		t.Errorf("trend = %q, want stable", m.Trend)
	}
}

func TestTrendOddDateCount(t *testing.T) {
	// Three dates: first half is one date (100), second half two (200, 200).
	records := []models.DailyConsumptionRecord{
		rec("2025-01-01", "A", 100),
		rec("2025-01-02", "A", 200),
		rec("2025-01-03", "A", 200),
	}
	m := Summarize(records)
	if m.Trend != "up" {
		t.Errorf("trend = %q, want up", m.Trend)
	}
	if m.TrendPercentage != 100 {
		t.Errorf("trend percentage = %v, want 100", m.TrendPercentage)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	m := Summarize(nil)
	if !m.InsufficientData {
		t.Error("empty input must set InsufficientData")
	}
	if m.TotalConsumption != 0 || m.AverageDaily != 0 || m.TrendPercentage != 0 {
		t.Errorf("empty metrics not zeroed: %+v", m)
	}
	if math.IsNaN(m.AverageDaily) {
		t.Error("AverageDaily is NaN")
	}
}

func TestSummarizeSingleDate(t *testing.T) {
	m := Summarize([]models.DailyConsumptionRecord{rec("2025-01-01", "A", 100)})
	if !m.InsufficientData {
		t.Error("single-date input must set InsufficientData (no trend)")
	}
	if m.TotalConsumption != 100 || m.AverageDaily != 100 {
		t.Errorf("totals wrong for single date: %+v", m)
	}
	if m.Trend != "stable" {
		t.Errorf("trend = %q, want stable", m.Trend)
	}
}

func TestActiveVersusTotalMeters(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		rec("2025-01-01", "A", 100),
		rec("2025-01-01", "B", 0),
		rec("2025-01-02", "B", 0),
	}
	m := Summarize(records)
	if m.TotalMeters != 2 {
		t.Errorf("total meters = %d, want 2", m.TotalMeters)
	}
	if m.ActiveMeters != 1 {
		t.Errorf("active meters = %d, want 1 (B never consumed)", m.ActiveMeters)
	}
}

func TestDailyTrendOrdering(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		rec("2025-01-03", "A", 30),
		rec("2025-01-01", "A", 10),
		rec("2025-01-02", "A", 20),
	}
	trend := DailyTrend(records)
	if len(trend) != 3 {
		t.Fatalf("got %d points, want 3", len(trend))
	}
	for i, want := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		if trend[i].Date != want {
			t.Errorf("trend[%d].Date = %s, want %s", i, trend[i].Date, want)
		}
	}
}

func TestZoneBreakdownSorted(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		{Date: "2025-01-01", MeterID: "A", Zone: "Zone_05", Consumption: 10},
		{Date: "2025-01-01", MeterID: "B", Zone: "Zone_08", Consumption: 100},
		{Date: "2025-01-02", MeterID: "B", Zone: "Zone_08", Consumption: 50},
	}
	breakdown := ZoneBreakdown(records)
	if breakdown[0].Zone != "Zone_08" || breakdown[0].Consumption != 150 {
		t.Errorf("top zone = %+v, want Zone_08/150", breakdown[0])
	}
}

func TestTopConsumersLimit(t *testing.T) {
	records := []models.DailyConsumptionRecord{
		rec("2025-01-01", "A", 10),
		rec("2025-01-01", "B", 100),
		rec("2025-01-01", "C", 50),
		rec("2025-01-02", "A", 5),
	}
	top := TopConsumers(records, 2)
	if len(top) != 2 {
		t.Fatalf("got %d consumers, want 2", len(top))
	}
	if top[0].MeterID != "B" || top[1].MeterID != "C" {
		t.Errorf("order = %s, %s; want B, C", top[0].MeterID, top[1].MeterID)
	}
	if top[0].TotalConsumption != 100 {
		t.Errorf("B total = %v, want 100", top[0].TotalConsumption)
	}
}
