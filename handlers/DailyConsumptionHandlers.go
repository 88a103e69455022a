package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/repository"
	"backend/services"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// Default daily window: July 2025, the month with stored per-day readings.
const (
	defaultDailyStart = "2025-07-01"
	defaultDailyEnd   = "2025-07-31"
)

func parseDateRange(c *gin.Context) (start, end time.Time, ok bool) {
	startStr := c.DefaultQuery("start_date", defaultDailyStart)
	endStr := c.DefaultQuery("end_date", defaultDailyEnd)

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
		return start, end, false
	}
	end, err = time.Parse("2006-01-02", endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
		return start, end, false
	}
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is after end_date"})
		return start, end, false
	}
	return start, end, true
}

// loadDailyRecords resolves the daily series for a date range using the
// three-stage source chain: stored readings when a daily table exists,
// synthesized pseudo-daily values from monthly meter totals otherwise, and
// synthesis over the built-in sample meters when the database is unreachable.
func loadDailyRecords(c *gin.Context, db *sql.DB, start, end time.Time) ([]models.DailyConsumptionRecord, string, bool) {
	stored, err := repository.FetchDailyConsumption(c.Request.Context(), db, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err == nil && len(stored) > 0 {
		return stored, models.DailySourceStored, false
	}
	if err != nil && !errors.Is(err, repository.ErrNoDailyTable) {
		log.Printf("stored daily readings unavailable, synthesizing: %v", err)
	}

	meters, fetchErr := repository.FetchWaterMeters(c.Request.Context(), db, repository.WaterMeterFilters{})
	source := models.DailySourceSynthesized
	degraded := false
	if fetchErr != nil || len(meters) == 0 {
		if fetchErr != nil {
			log.Printf("water meters query failed, synthesizing from fallback data: %v", fetchErr)
		}
		meters = storage.FallbackWaterMeters()
		source = models.DailySourceFallback
		degraded = true
	}

	records, synthErr := services.SynthesizeDailyAll(meters, start, end, services.NewJitterSource())
	if synthErr != nil {
		// Range was validated upstream; treat this as empty.
		log.Printf("daily synthesis failed: %v", synthErr)
		return nil, source, degraded
	}
	return records, source, degraded
}

// GetDailyConsumption godoc
// @Summary      Daily water consumption
// @Description  Returns per-day consumption for a date range with summary metrics. Source is "stored" when a daily readings table exists, "synthesized" when values are generated from monthly totals, "fallback" when built-in sample data was used.
// @Tags         water
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"  default(2025-07-01)
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"   default(2025-07-31)
// @Param        zone        query     string  false  "Zone name substring filter"
// @Success      200  {object}  models.DailyConsumptionResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/daily [get]
func GetDailyConsumption(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		records, source, degraded := loadDailyRecords(c, db, start, end)

		if zone := c.Query("zone"); zone != "" {
			var filtered []models.DailyConsumptionRecord
			for _, r := range records {
				if services.ZoneMatches(r.Zone, zone) {
					filtered = append(filtered, r)
				}
			}
			records = filtered
		}

		resp := models.DailyConsumptionResponse{
			Records:  records,
			Metrics:  services.Summarize(records),
			Source:   source,
			Degraded: degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetDailyMetrics godoc
// @Summary      Daily consumption metrics
// @Description  Summary metrics only (totals, peak/low day, trend) for a date range.
// @Tags         water
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"  default(2025-07-01)
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"   default(2025-07-31)
// @Success      200  {object}  models.DailyMetricsResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/daily/metrics [get]
func GetDailyMetrics(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		records, source, degraded := loadDailyRecords(c, db, start, end)

		resp := models.DailyMetricsResponse{
			ConsumptionMetrics: services.Summarize(records),
			Source:             source,
			Degraded:           degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetDailyTrend godoc
// @Summary      Daily consumption trend series
// @Description  Per-day totals across all meters, ascending by date, for charting.
// @Tags         water
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"  default(2025-07-01)
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"   default(2025-07-31)
// @Success      200  {object}  models.DailyTrendResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/daily/trend [get]
func GetDailyTrend(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		records, source, degraded := loadDailyRecords(c, db, start, end)

		resp := models.DailyTrendResponse{
			Trend:    services.DailyTrend(records),
			Source:   source,
			Degraded: degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetDailyZoneBreakdown godoc
// @Summary      Daily consumption by zone
// @Description  Aggregate consumption per zone over a date range, sorted by volume descending.
// @Tags         water
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"  default(2025-07-01)
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"   default(2025-07-31)
// @Success      200  {object}  models.ZoneBreakdownResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/daily/zones [get]
func GetDailyZoneBreakdown(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		records, source, degraded := loadDailyRecords(c, db, start, end)

		resp := models.ZoneBreakdownResponse{
			Zones:    services.ZoneBreakdown(records),
			Source:   source,
			Degraded: degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetTopDailyConsumers godoc
// @Summary      Top consumers
// @Description  Meters ranked by total consumption over a date range.
// @Tags         water
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"  default(2025-07-01)
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"   default(2025-07-31)
// @Param        limit       query     int     false  "Maximum meters to return"  default(10)
// @Success      200  {object}  models.TopConsumersResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/water/daily/top-consumers [get]
func GetTopDailyConsumers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		limit := 10
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = parsed
		}

		records, source, degraded := loadDailyRecords(c, db, start, end)

		resp := models.TopConsumersResponse{
			Consumers: services.TopConsumers(records, limit),
			Source:    source,
			Degraded:  degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}
