package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"backend/models"
	"backend/repository"
	"backend/services"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// Default analysis window: the months with loaded readings.
const (
	defaultStartMonth = "2025-01"
	defaultEndMonth   = "2025-07"
)

// loadWaterMeters fetches meters from the database, falling back to the
// built-in sample set when the database cannot serve the request. The bool
// reports whether fallback data was used.
func loadWaterMeters(c *gin.Context, db *sql.DB, filters repository.WaterMeterFilters) ([]models.WaterMeter, bool) {
	meters, err := repository.FetchWaterMeters(c.Request.Context(), db, filters)
	if err != nil {
		log.Printf("water meters query failed, serving fallback data: %v", err)
		return filterFallbackMeters(storage.FallbackWaterMeters(), filters), true
	}
	return meters, false
}

func filterFallbackMeters(meters []models.WaterMeter, filters repository.WaterMeterFilters) []models.WaterMeter {
	var out []models.WaterMeter
	for _, m := range meters {
		if filters.Level != "" && m.Label != filters.Level {
			continue
		}
		if filters.Zone != "" && !services.ZoneMatches(m.Zone, filters.Zone) {
			continue
		}
		out = append(out, m)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out
}

// GetWaterMeters godoc
// @Summary      List water meters
// @Description  Lists water meters with optional hierarchy level and zone filters. Serves the built-in sample set with degraded=true when the database is unreachable.
// @Tags         water
// @Produce      json
// @Param        level  query     string  false  "Hierarchy level (L1, L2, L3, L4, DC)"
// @Param        zone   query     string  false  "Zone name substring, case-insensitive"
// @Param        limit  query     int     false  "Maximum rows to return"
// @Success      200    {object}  models.WaterMetersResponse
// @Router       /api/water/meters [get]
func GetWaterMeters(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := repository.WaterMeterFilters{
			Level: c.Query("level"),
			Zone:  c.Query("zone"),
		}
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			filters.Limit = limit
		}

		meters, degraded := loadWaterMeters(c, db, filters)

		resp := models.WaterMetersResponse{
			Meters:   meters,
			Count:    len(meters),
			Degraded: degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetWaterHierarchy godoc
// @Summary      Water hierarchy analysis
// @Description  Aggregates consumption per hierarchy level over a month range and computes the stage losses between adjacent levels. Direct connections are reported separately.
// @Tags         water
// @Produce      json
// @Param        start_month  query     string  false  "First month, YYYY-MM"  default(2025-01)
// @Param        end_month    query     string  false  "Last month, YYYY-MM"   default(2025-07)
// @Param        zone         query     string  false  "Zone name substring filter"
// @Success      200  {object}  models.HierarchyResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/hierarchy [get]
func GetWaterHierarchy(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		startMonth := c.DefaultQuery("start_month", defaultStartMonth)
		endMonth := c.DefaultQuery("end_month", defaultEndMonth)
		zone := c.Query("zone")

		meters, degraded := loadWaterMeters(c, db, repository.WaterMeterFilters{})

		analysis, err := services.AggregateHierarchy(meters, startMonth, endMonth, zone)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRange) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := models.HierarchyResponse{HierarchyAnalysis: *analysis, Degraded: degraded}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetZoneAnalysis godoc
// @Summary      Zone bulk-vs-individual analysis
// @Description  Compares a zone's bulk meter intake against the individual meters inside it and reports loss and coverage efficiency.
// @Tags         water
// @Produce      json
// @Param        zone         path      string  true   "Exact zone name, e.g. Zone_08"
// @Param        start_month  query     string  false  "First month, YYYY-MM"  default(2025-01)
// @Param        end_month    query     string  false  "Last month, YYYY-MM"   default(2025-07)
// @Success      200  {object}  models.ZoneAnalysisResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/zones/{zone}/analysis [get]
func GetZoneAnalysis(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		zone := c.Param("zone")
		if zone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "zone is required"})
			return
		}
		startMonth := c.DefaultQuery("start_month", defaultStartMonth)
		endMonth := c.DefaultQuery("end_month", defaultEndMonth)

		meters, degraded := loadWaterMeters(c, db, repository.WaterMeterFilters{})

		analysis, err := services.AnalyzeZone(meters, zone, startMonth, endMonth)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRange) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := models.ZoneAnalysisResponse{ZoneAnalysis: *analysis, Degraded: degraded}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetWaterZones godoc
// @Summary      List zones
// @Description  Returns the distinct zone names present in the meter inventory.
// @Tags         water
// @Produce      json
// @Success      200  {object}  models.ZoneListResponse
// @Router       /api/water/zones [get]
func GetWaterZones(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		meters, degraded := loadWaterMeters(c, db, repository.WaterMeterFilters{})

		zones := services.UniqueZones(meters)
		resp := models.ZoneListResponse{Zones: zones, Count: len(zones), Degraded: degraded}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetConsumptionByType godoc
// @Summary      Consumption by meter type
// @Description  Aggregates consumption per raw meter type over a month range, sorted by volume descending.
// @Tags         water
// @Produce      json
// @Param        start_month  query     string  false  "First month, YYYY-MM"  default(2025-01)
// @Param        end_month    query     string  false  "Last month, YYYY-MM"   default(2025-07)
// @Success      200  {object}  models.TypeBreakdownResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/consumption-by-type [get]
func GetConsumptionByType(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		startMonth := c.DefaultQuery("start_month", defaultStartMonth)
		endMonth := c.DefaultQuery("end_month", defaultEndMonth)

		meters, degraded := loadWaterMeters(c, db, repository.WaterMeterFilters{})

		breakdown, err := services.ConsumptionByType(meters, startMonth, endMonth)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRange) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := models.TypeBreakdownResponse{Breakdown: breakdown, Degraded: degraded}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}
