package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"backend/models"

	"github.com/gin-gonic/gin"
)

func TestGetSTPMetricsDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/stp/metrics", GetSTPMetrics(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/stp/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.STPMetricsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag when database is unreachable")
	}
	if resp.Message == "" {
		t.Error("expected degraded message to be set")
	}
	if resp.RecordCount == 0 {
		t.Error("expected records in the fallback operations set")
	}

	// Metric keys stay at the top level alongside the degraded marking.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["totalInletSewage"]; !ok {
		t.Error("expected top-level totalInletSewage key")
	}
}

func TestGetSTPMonthlySummaryDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/stp/monthly", GetSTPMonthlySummary(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/stp/monthly")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.STPMonthlyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag when database is unreachable")
	}
	if len(resp.Monthly) == 0 {
		t.Error("expected monthly summaries from the fallback operations set")
	}
}
