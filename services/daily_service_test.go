package services

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategorizeMeterType(t *testing.T) {
	cases := []struct {
		meterType string
		want      models.MeterCategory
	}{
		{"Retail", models.CategoryCommercial},
		{"Commercial Offices", models.CategoryCommercial},
		{"Residential (Villa)", models.CategoryResidential},
		{"Residential (Apart)", models.CategoryResidential},
		{"IRR_Services", models.CategoryIrrigation},
		{"Zone Bulk", models.CategoryOther},
		{"Main Bulk", models.CategoryOther},
		{"", models.CategoryOther},
		// Priority order: a string matching both rules resolves to the first.
		{"Retail Residential Mix", models.CategoryCommercial},
	}
	for _, tc := range cases {
		if got := models.CategorizeMeterType(tc.meterType); got != tc.want {
			t.Errorf("CategorizeMeterType(%q) = %v, want %v", tc.meterType, got, tc.want)
		}
	}
}

func TestSynthesizeDailyConservation(t *testing.T) {
	// Multiplier 1.0 (Other) and unit jitter: the synthesized month must sum
	// back to the monthly total up to per-day rounding.
	meter := models.WaterMeter{
		MeterLabel: "ZONE 8 (Bulk Zone 8)", AccountNumber: "4300342",
		Label: "L2", Zone: "Zone_08", Type: "Zone Bulk", Jan25: 3100,
	}
	records, err := SynthesizeDaily(&meter, date(2025, time.January, 1), date(2025, time.January, 31), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	if len(records) != 31 {
		t.Fatalf("got %d records, want 31", len(records))
	}

	var sum float64
	for _, r := range records {
		sum += r.Consumption
	}
	if diff := sum - 3100; diff > 31 || diff < -31 {
		t.Errorf("month sum = %v, want 3100 within +/-31", sum)
	}
}

func TestSynthesizeDailyExactWhenDivisible(t *testing.T) {
	// 3100/31 = 100 exactly, so with no jitter every day is 100.
	meter := models.WaterMeter{Type: "Zone Bulk", Jan25: 3100}
	records, err := SynthesizeDaily(&meter, date(2025, time.January, 1), date(2025, time.January, 31), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	for _, r := range records {
		if r.Consumption != 100 {
			t.Fatalf("day %s = %v, want 100", r.Date, r.Consumption)
		}
	}
}

func TestSynthesizeDailyWeekendMultiplier(t *testing.T) {
	// January 2025: the 4th is a Saturday, the 6th a Monday.
	meter := models.WaterMeter{Type: "Retail", Jan25: 3100}
	records, err := SynthesizeDaily(&meter, date(2025, time.January, 4), date(2025, time.January, 6), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Consumption != 60 { // 100 * 0.6
		t.Errorf("Saturday = %v, want 60", records[0].Consumption)
	}
	if records[1].Consumption != 60 { // Sunday
		t.Errorf("Sunday = %v, want 60", records[1].Consumption)
	}
	if records[2].Consumption != 130 { // 100 * 1.3
		t.Errorf("Monday = %v, want 130", records[2].Consumption)
	}
}

func TestSynthesizeDailyResidentialAndIrrigation(t *testing.T) {
	residential := models.WaterMeter{Type: "Residential (Villa)", Jan25: 3100}
	records, err := SynthesizeDaily(&residential, date(2025, time.January, 4), date(2025, time.January, 6), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	if records[0].Consumption != 120 { // weekend 1.2
		t.Errorf("residential Saturday = %v, want 120", records[0].Consumption)
	}
	if records[2].Consumption != 100 { // weekday 1.0
		t.Errorf("residential Monday = %v, want 100", records[2].Consumption)
	}

	irrigation := models.WaterMeter{Type: "IRR_Services", Jan25: 3100}
	records, err = SynthesizeDaily(&irrigation, date(2025, time.January, 4), date(2025, time.January, 6), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	for _, r := range records {
		if r.Consumption != 150 { // flat 1.5
			t.Errorf("irrigation %s = %v, want 150", r.Date, r.Consumption)
		}
	}
}

func TestSynthesizeDailyNonNegative(t *testing.T) {
	meter := models.WaterMeter{Type: "Residential (Villa)", Jan25: 2}
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 20; run++ {
		records, err := SynthesizeDaily(&meter, date(2025, time.January, 1), date(2025, time.January, 31), rng)
		if err != nil {
			t.Fatalf("SynthesizeDaily failed: %v", err)
		}
		for _, r := range records {
			if r.Consumption < 0 {
				t.Fatalf("negative consumption %v on %s", r.Consumption, r.Date)
			}
		}
	}
}

func TestSynthesizeDailyMultiMonth(t *testing.T) {
	// Each month is expanded from its own total: Jan averages 100/day,
	// Feb averages 50/day.
	meter := models.WaterMeter{Type: "Zone Bulk", Jan25: 3100, Feb25: 1400}
	records, err := SynthesizeDaily(&meter, date(2025, time.January, 30), date(2025, time.February, 2), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if records[0].Date != "2025-01-30" || records[3].Date != "2025-02-02" {
		t.Errorf("unexpected range %s..%s", records[0].Date, records[3].Date)
	}
	if records[0].Consumption != 100 {
		t.Errorf("Jan 30 = %v, want 100", records[0].Consumption)
	}
	// Feb 1 2025 is a Saturday but the meter is Other, so no weekend scaling.
	if records[2].Consumption != 50 {
		t.Errorf("Feb 1 = %v, want 50", records[2].Consumption)
	}
}

func TestSynthesizeDailyAscendingOrder(t *testing.T) {
	meter := models.WaterMeter{Type: "Zone Bulk", Jan25: 310}
	records, err := SynthesizeDaily(&meter, date(2025, time.January, 1), date(2025, time.January, 15), NewJitterSource())
	if err != nil {
		t.Fatalf("SynthesizeDaily failed: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date <= records[i-1].Date {
			t.Fatalf("records not ascending at %d: %s then %s", i, records[i-1].Date, records[i].Date)
		}
	}
}

func TestSynthesizeDailyInvalidRange(t *testing.T) {
	meter := models.WaterMeter{Type: "Zone Bulk", Jan25: 310}
	if _, err := SynthesizeDaily(&meter, date(2025, time.January, 10), date(2025, time.January, 1), UnitJitter); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

func TestSynthesizeDailyAllGroupsByDate(t *testing.T) {
	meters := []models.WaterMeter{
		{AccountNumber: "A", Type: "Zone Bulk", Jan25: 3100},
		{AccountNumber: "B", Type: "Zone Bulk", Jan25: 620},
	}
	records, err := SynthesizeDailyAll(meters, date(2025, time.January, 1), date(2025, time.January, 2), UnitJitter)
	if err != nil {
		t.Fatalf("SynthesizeDailyAll failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	// Both meters for day one come before day two.
	if records[0].Date != "2025-01-01" || records[1].Date != "2025-01-01" {
		t.Errorf("first two records should be 2025-01-01, got %s / %s", records[0].Date, records[1].Date)
	}
	if records[0].MeterID != "A" || records[1].MeterID != "B" {
		t.Errorf("meter order within a date = %s, %s; want A, B", records[0].MeterID, records[1].MeterID)
	}
}
