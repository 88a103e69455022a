package services

import (
	"errors"
	"math"
	"testing"

	"backend/models"
)

func fixtureMeters() []models.WaterMeter {
	return []models.WaterMeter{
		{ID: 1, MeterLabel: "Main Bulk (NAMA)", AccountNumber: "C43659", Label: "L1", Zone: "Main Bulk", Type: "Main Bulk", Jan25: 32580, Feb25: 44043},
		{ID: 2, MeterLabel: "ZONE 8 (Bulk Zone 8)", AccountNumber: "4300342", Label: "L2", Zone: "Zone_08", ParentMeter: "Main Bulk (NAMA)", Type: "Zone Bulk", Jan25: 1547, Feb25: 1498},
		{ID: 3, MeterLabel: "ZONE 3A (BULK Zone 3A)", AccountNumber: "4300343", Label: "L2", Zone: "Zone_03_(A)", ParentMeter: "Main Bulk (NAMA)", Type: "Zone Bulk", Jan25: 4235, Feb25: 4273},
		{ID: 4, MeterLabel: "Z8-1", AccountNumber: "4300188", Label: "L3", Zone: "Zone_08", ParentMeter: "ZONE 8 (Bulk Zone 8)", Type: "Residential (Villa)", Jan25: 120, Feb25: 90},
		{ID: 5, MeterLabel: "D-45 Building Bulk", AccountNumber: "4300190", Label: "L3", Zone: "Zone_03_(A)", ParentMeter: "ZONE 3A (BULK Zone 3A)", Type: "D_Building_Bulk", Jan25: 800, Feb25: 750},
		{ID: 6, MeterLabel: "Z3-45(1)", AccountNumber: "4300191", Label: "L4", Zone: "Zone_03_(A)", ParentMeter: "D-45 Building Bulk", Type: "Residential (Apart)", Jan25: 45, Feb25: 40},
		{ID: 7, MeterLabel: "Hotel Main Building", AccountNumber: "4300334", Label: "DC", Zone: "Direct Connection", ParentMeter: "Main Bulk (NAMA)", Type: "Retail", Jan25: 18048, Feb25: 19482},
	}
}

func levelTotal(t *testing.T, a *models.HierarchyAnalysis, level string) models.HierarchyLevelTotal {
	t.Helper()
	for _, lt := range a.Levels {
		if lt.Level == level {
			return lt
		}
	}
	t.Fatalf("level %s missing from analysis", level)
	return models.HierarchyLevelTotal{}
}

func segment(t *testing.T, a *models.HierarchyAnalysis, from, to string) models.LossSegment {
	t.Helper()
	for _, seg := range a.LossSegments {
		if seg.FromLevel == from && seg.ToLevel == to {
			return seg
		}
	}
	t.Fatalf("segment %s->%s missing from analysis", from, to)
	return models.LossSegment{}
}

func TestMonthKeysInRange(t *testing.T) {
	keys, err := MonthKeysInRange("2025-01", "2025-03")
	if err != nil {
		t.Fatalf("MonthKeysInRange failed: %v", err)
	}
	want := []string{"2025-01", "2025-02", "2025-03"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestMonthKeysInRangeInvalid(t *testing.T) {
	if _, err := MonthKeysInRange("2025-05", "2025-01"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("start after end: got %v, want ErrInvalidRange", err)
	}
	if _, err := MonthKeysInRange("not-a-month", "2025-01"); err == nil {
		t.Error("malformed start month accepted")
	}
}

func TestAggregateHierarchySingleMonth(t *testing.T) {
	a, err := AggregateHierarchy(fixtureMeters(), "2025-01", "2025-01", "")
	if err != nil {
		t.Fatalf("AggregateHierarchy failed: %v", err)
	}

	if got := levelTotal(t, a, "L1").TotalConsumption; got != 32580 {
		t.Errorf("L1 total = %v, want 32580", got)
	}
	if got := levelTotal(t, a, "L2").TotalConsumption; got != 1547+4235 {
		t.Errorf("L2 total = %v, want %v", got, 1547+4235)
	}
	if got := levelTotal(t, a, "L3").TotalConsumption; got != 920 {
		t.Errorf("L3 total = %v, want 920", got)
	}
	if got := levelTotal(t, a, "L4").TotalConsumption; got != 45 {
		t.Errorf("L4 total = %v, want 45", got)
	}

	seg := segment(t, a, "L1", "L2")
	if seg.LossVolume != 32580-5782 {
		t.Errorf("L1->L2 loss = %v, want %v", seg.LossVolume, 32580-5782)
	}

	// DC consumption stays out of the chain but is reported separately.
	if a.DCTotal != 18048 {
		t.Errorf("DC total = %v, want 18048", a.DCTotal)
	}
}

func TestAggregateHierarchyEndToEnd(t *testing.T) {
	meters := []models.WaterMeter{
		{ID: 1, Label: "L1", Zone: "Main", Jan25: 32580},
		{ID: 2, Label: "L2", Zone: "Zone_08", Jan25: 1547},
	}
	a, err := AggregateHierarchy(meters, "2025-01", "2025-01", "")
	if err != nil {
		t.Fatalf("AggregateHierarchy failed: %v", err)
	}

	seg := segment(t, a, "L1", "L2")
	if seg.LossVolume != 31033 {
		t.Errorf("loss volume = %v, want 31033", seg.LossVolume)
	}
	if math.Abs(seg.LossPercentage-95.25) > 0.01 {
		t.Errorf("loss percentage = %v, want ~95.25", seg.LossPercentage)
	}
}

func TestAggregateHierarchyEmptyInput(t *testing.T) {
	a, err := AggregateHierarchy(nil, "2025-01", "2025-02", "")
	if err != nil {
		t.Fatalf("AggregateHierarchy on empty input failed: %v", err)
	}
	if len(a.Levels) != 4 {
		t.Fatalf("got %d levels, want 4", len(a.Levels))
	}
	for _, lt := range a.Levels {
		if lt.TotalConsumption != 0 {
			t.Errorf("%s total = %v, want 0", lt.Level, lt.TotalConsumption)
		}
	}
	if len(a.LossSegments) != 3 {
		t.Fatalf("got %d loss segments, want 3", len(a.LossSegments))
	}
	for _, seg := range a.LossSegments {
		if math.IsNaN(seg.LossPercentage) || math.IsInf(seg.LossPercentage, 0) {
			t.Errorf("%s->%s percentage not finite: %v", seg.FromLevel, seg.ToLevel, seg.LossPercentage)
		}
		if seg.LossPercentage != 0 {
			t.Errorf("%s->%s percentage = %v, want 0", seg.FromLevel, seg.ToLevel, seg.LossPercentage)
		}
	}
}

func TestAggregateHierarchyInvalidRange(t *testing.T) {
	if _, err := AggregateHierarchy(fixtureMeters(), "2025-03", "2025-01", ""); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

func TestAggregateHierarchyZoneFilter(t *testing.T) {
	// Substring match, case-insensitive: "zone_08" must match "Zone_08".
	a, err := AggregateHierarchy(fixtureMeters(), "2025-01", "2025-01", "zone_08")
	if err != nil {
		t.Fatalf("AggregateHierarchy failed: %v", err)
	}
	if got := levelTotal(t, a, "L2").TotalConsumption; got != 1547 {
		t.Errorf("filtered L2 total = %v, want 1547", got)
	}
	if got := levelTotal(t, a, "L3").TotalConsumption; got != 120 {
		t.Errorf("filtered L3 total = %v, want 120", got)
	}
	if got := levelTotal(t, a, "L1").TotalConsumption; got != 0 {
		t.Errorf("filtered L1 total = %v, want 0 (Main Bulk zone excluded)", got)
	}
	if a.TotalMeters != 2 {
		t.Errorf("matched meters = %d, want 2", a.TotalMeters)
	}
}

func TestAggregateHierarchyNegativeLossSurfaced(t *testing.T) {
	meters := []models.WaterMeter{
		{ID: 1, Label: "L2", Zone: "Z", Jan25: 100},
		{ID: 2, Label: "L3", Zone: "Z", Jan25: 140},
	}
	a, err := AggregateHierarchy(meters, "2025-01", "2025-01", "")
	if err != nil {
		t.Fatalf("AggregateHierarchy failed: %v", err)
	}
	seg := segment(t, a, "L2", "L3")
	if seg.LossVolume != -40 {
		t.Errorf("loss volume = %v, want -40 (not clamped)", seg.LossVolume)
	}
}

func TestAnalyzeZone(t *testing.T) {
	a, err := AnalyzeZone(fixtureMeters(), "Zone_03_(A)", "2025-01", "2025-02")
	if err != nil {
		t.Fatalf("AnalyzeZone failed: %v", err)
	}
	wantBulk := 4235.0 + 4273.0
	wantIndividual := 800.0 + 750.0 + 45.0 + 40.0
	if a.BulkTotal != wantBulk {
		t.Errorf("bulk total = %v, want %v", a.BulkTotal, wantBulk)
	}
	if a.IndividualTotal != wantIndividual {
		t.Errorf("individual total = %v, want %v", a.IndividualTotal, wantIndividual)
	}
	if a.Loss != wantBulk-wantIndividual {
		t.Errorf("loss = %v, want %v", a.Loss, wantBulk-wantIndividual)
	}
	wantEff := wantIndividual / wantBulk * 100
	if math.Abs(a.Efficiency-wantEff) > 1e-9 {
		t.Errorf("efficiency = %v, want %v", a.Efficiency, wantEff)
	}
}

func TestAnalyzeZoneNoBulk(t *testing.T) {
	meters := []models.WaterMeter{
		{ID: 1, Label: "L3", Zone: "Zone_X", Jan25: 50},
	}
	a, err := AnalyzeZone(meters, "Zone_X", "2025-01", "2025-01")
	if err != nil {
		t.Fatalf("AnalyzeZone failed: %v", err)
	}
	if a.LossPercentage != 0 || a.Efficiency != 0 {
		t.Errorf("zero bulk must give zero percentages, got loss=%v eff=%v", a.LossPercentage, a.Efficiency)
	}
}

func TestConsumptionByType(t *testing.T) {
	breakdown, err := ConsumptionByType(fixtureMeters(), "2025-01", "2025-01")
	if err != nil {
		t.Fatalf("ConsumptionByType failed: %v", err)
	}
	if len(breakdown) == 0 {
		t.Fatal("empty breakdown")
	}
	if breakdown[0].Type != "Main Bulk" {
		t.Errorf("top type = %q, want Main Bulk", breakdown[0].Type)
	}
	for i := 1; i < len(breakdown); i++ {
		if breakdown[i].Total > breakdown[i-1].Total {
			t.Errorf("breakdown not sorted by descending total at %d", i)
		}
	}
}

func TestUniqueZones(t *testing.T) {
	zones := UniqueZones(fixtureMeters())
	want := []string{"Direct Connection", "Main Bulk", "Zone_03_(A)", "Zone_08"}
	if len(zones) != len(want) {
		t.Fatalf("got %d zones, want %d: %v", len(zones), len(want), zones)
	}
	for i := range want {
		if zones[i] != want[i] {
			t.Errorf("zones[%d] = %q, want %q", i, zones[i], want[i])
		}
	}
}
