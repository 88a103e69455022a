package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/models"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

// unreachableDB returns a pool whose connections always fail to dial, which
// exercises the fallback-serving path without a running database.
func unreachableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func performRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetWaterMetersServesFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/meters", GetWaterMeters(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/meters")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.WaterMetersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded response when database is unreachable")
	}
	if resp.Message == "" {
		t.Error("expected degraded message to be set")
	}
	if resp.Count != len(resp.Meters) || resp.Count == 0 {
		t.Errorf("count = %d, meters = %d", resp.Count, len(resp.Meters))
	}
}

func TestGetWaterMetersLevelFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/meters", GetWaterMeters(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/meters?level=L2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.WaterMetersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("expected L2 meters in fallback set")
	}
	for _, m := range resp.Meters {
		if m.Label != "L2" {
			t.Errorf("meter %s has level %s, want L2", m.MeterLabel, m.Label)
		}
	}
}

func TestGetWaterMetersInvalidLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/meters", GetWaterMeters(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/meters?limit=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetWaterHierarchyRejectsReversedRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/hierarchy", GetWaterHierarchy(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/hierarchy?start_month=2025-07&end_month=2025-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetWaterHierarchyDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/hierarchy", GetWaterHierarchy(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/hierarchy")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.HierarchyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag when database is unreachable")
	}
	if resp.Message == "" {
		t.Error("expected degraded message to be set")
	}
	if len(resp.Levels) == 0 {
		t.Error("expected level totals in fallback analysis")
	}

	// The analysis keys sit at the top level of the payload; the degraded
	// marking never changes the response shape.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["levels"]; !ok {
		t.Error("expected top-level levels key")
	}
	if _, ok := raw["loss_segments"]; !ok {
		t.Error("expected top-level loss_segments key")
	}
	if _, ok := raw["analysis"]; ok {
		t.Error("analysis must not be nested under its own key")
	}
}

func TestGetZoneAnalysisDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/zones/:zone/analysis", GetZoneAnalysis(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/zones/Zone_08/analysis")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.ZoneAnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag on fallback-built zone analysis")
	}
	if resp.Message == "" {
		t.Error("expected degraded message to be set")
	}
	if resp.Zone != "Zone_08" {
		t.Errorf("zone = %q, want Zone_08", resp.Zone)
	}
}

func TestGetWaterZonesFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/zones", GetWaterZones(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/zones")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.ZoneListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Zones) == 0 {
		t.Fatal("expected zones from the fallback meter set")
	}
	if resp.Count != len(resp.Zones) {
		t.Errorf("count = %d, zones = %d", resp.Count, len(resp.Zones))
	}
	if !resp.Degraded {
		t.Error("expected degraded flag on fallback zone list")
	}
}

func TestGetConsumptionByTypeDegradedFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/water/consumption-by-type", GetConsumptionByType(unreachableDB(t)))

	w := performRequest(r, http.MethodGet, "/api/water/consumption-by-type")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp models.TypeBreakdownResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag on fallback-built breakdown")
	}
	if len(resp.Breakdown) == 0 {
		t.Error("expected type breakdown from the fallback meter set")
	}
}
