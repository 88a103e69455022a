package services

import (
	"errors"
	"math"
	"testing"

	"backend/models"
)

func TestAnalyzeElectricity(t *testing.T) {
	meters := []models.ElectricityMeter{
		{ID: 1, Name: "Pumping Station 01", AccountNumber: "R52330", Type: "PS", Jan25: 1608, Feb25: 1940},
		{ID: 2, Name: "Central Park", AccountNumber: "R54672", Type: "D_Building", Jan25: 22000, Feb25: 19500},
	}
	a, err := AnalyzeElectricity(meters, "2025-01", "2025-02")
	if err != nil {
		t.Fatalf("AnalyzeElectricity failed: %v", err)
	}

	wantTotal := 1608.0 + 1940 + 22000 + 19500
	if a.TotalConsumption != wantTotal {
		t.Errorf("total = %v, want %v", a.TotalConsumption, wantTotal)
	}
	wantCost := wantTotal * 0.025
	if math.Abs(a.TotalCost-wantCost) > 1e-9 {
		t.Errorf("cost = %v, want %v", a.TotalCost, wantCost)
	}
	if a.TopConsumer == nil || a.TopConsumer.AccountNumber != "R54672" {
		t.Errorf("top consumer = %+v, want R54672", a.TopConsumer)
	}
	if len(a.MonthlyTrend) != 2 {
		t.Fatalf("got %d trend points, want 2", len(a.MonthlyTrend))
	}
	if a.MonthlyTrend[0].Month != "2025-01" || a.MonthlyTrend[0].Consumption != 1608+22000 {
		t.Errorf("trend[0] = %+v", a.MonthlyTrend[0])
	}
}

func TestAnalyzeElectricityInvalidRange(t *testing.T) {
	if _, err := AnalyzeElectricity(nil, "2025-03", "2025-01"); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

func TestAnalyzeElectricityEmpty(t *testing.T) {
	a, err := AnalyzeElectricity(nil, "2025-01", "2025-01")
	if err != nil {
		t.Fatalf("AnalyzeElectricity failed: %v", err)
	}
	if a.TotalConsumption != 0 || a.TotalCost != 0 {
		t.Errorf("empty analysis not zeroed: %+v", a)
	}
	if a.TopConsumer != nil {
		t.Errorf("top consumer on empty set: %+v", a.TopConsumer)
	}
}
