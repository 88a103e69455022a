package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"backend/models"

	"github.com/gin-gonic/gin"
)

func TestGetDailyConsumptionFallbackSource(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/daily", GetDailyConsumption(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/daily?start_date=2025-07-01&end_date=2025-07-03")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.DailyConsumptionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Source != models.DailySourceFallback {
		t.Errorf("source = %q, want %q", resp.Source, models.DailySourceFallback)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag when database is unreachable")
	}
	if len(resp.Records) == 0 {
		t.Fatal("expected synthesized records from the fallback meter set")
	}
	for _, rec := range resp.Records {
		if rec.Date < "2025-07-01" || rec.Date > "2025-07-03" {
			t.Errorf("record date %s outside requested range", rec.Date)
		}
	}
}

func TestGetDailyConsumptionRejectsBadDates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/daily", GetDailyConsumption(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/daily?start_date=July-1&end_date=2025-07-03")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetTopDailyConsumersLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/daily/top-consumers", GetTopDailyConsumers(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/daily/top-consumers?start_date=2025-07-01&end_date=2025-07-05&limit=3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.TopConsumersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Consumers) > 3 {
		t.Errorf("got %d consumers, want at most 3", len(resp.Consumers))
	}
	for i := 1; i < len(resp.Consumers); i++ {
		if resp.Consumers[i].TotalConsumption > resp.Consumers[i-1].TotalConsumption {
			t.Error("consumers not sorted by consumption descending")
			break
		}
	}
	if resp.Source != models.DailySourceFallback {
		t.Errorf("source = %q, want %q", resp.Source, models.DailySourceFallback)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag when database is unreachable")
	}
}

func TestGetDailyMetricsDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/daily/metrics", GetDailyMetrics(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/daily/metrics?start_date=2025-07-01&end_date=2025-07-05")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.DailyMetricsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag on fallback-built metrics")
	}
	if resp.Source != models.DailySourceFallback {
		t.Errorf("source = %q, want %q", resp.Source, models.DailySourceFallback)
	}
	if resp.TotalConsumption <= 0 {
		t.Error("expected positive total consumption from synthesized records")
	}

	// Metric keys stay at the top level alongside the provenance fields.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["totalConsumption"]; !ok {
		t.Error("expected top-level totalConsumption key")
	}
}

func TestGetDailyTrendDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/daily/trend", GetDailyTrend(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/daily/trend?start_date=2025-07-01&end_date=2025-07-05")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.DailyTrendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag on fallback-built trend")
	}
	if len(resp.Trend) != 5 {
		t.Errorf("got %d trend days, want 5", len(resp.Trend))
	}
}

func TestGetDailyZoneBreakdownDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/daily/zones", GetDailyZoneBreakdown(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/daily/zones?start_date=2025-07-01&end_date=2025-07-05")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.ZoneBreakdownResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag on fallback-built zone breakdown")
	}
	if len(resp.Zones) == 0 {
		t.Error("expected zone aggregates from the fallback meter set")
	}
}
