package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"backend/models"
	"backend/repository"
	"backend/services"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

func loadSTPRecords(c *gin.Context, db *sql.DB, startDate, endDate string) ([]models.STPRecord, bool) {
	records, err := repository.FetchSTPRecords(c.Request.Context(), db, startDate, endDate)
	if err != nil {
		log.Printf("stp operations query failed, serving fallback data: %v", err)
		fallback := storage.FallbackSTPRecords()
		for i := range fallback {
			fallback[i].DeriveFinancials()
		}
		return fallback, true
	}
	return records, false
}

// GetSTPOperations godoc
// @Summary      STP daily operations
// @Description  Daily sewage treatment plant records with per-month summaries and financial roll-up. Missing financial columns are derived from the plant tariffs.
// @Tags         stp
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"
// @Success      200  {object}  models.STPResponse
// @Router       /api/stp/operations [get]
func GetSTPOperations(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, degraded := loadSTPRecords(c, db, c.Query("start_date"), c.Query("end_date"))

		resp := models.STPResponse{
			Records:  records,
			Monthly:  services.MonthlySTPSummary(records),
			Metrics:  services.SummarizeSTP(records),
			Degraded: degraded,
		}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetSTPMetrics godoc
// @Summary      STP metrics roll-up
// @Tags         stp
// @Produce      json
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"
// @Success      200  {object}  models.STPMetricsResponse
// @Router       /api/stp/metrics [get]
func GetSTPMetrics(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, degraded := loadSTPRecords(c, db, c.Query("start_date"), c.Query("end_date"))

		resp := models.STPMetricsResponse{STPMetrics: services.SummarizeSTP(records), Degraded: degraded}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetSTPMonthlySummary godoc
// @Summary      STP monthly summary
// @Tags         stp
// @Produce      json
// @Success      200  {object}  models.STPMonthlyResponse
// @Router       /api/stp/monthly [get]
func GetSTPMonthlySummary(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, degraded := loadSTPRecords(c, db, "", "")

		resp := models.STPMonthlyResponse{Monthly: services.MonthlySTPSummary(records), Degraded: degraded}
		if degraded {
			resp.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, resp)
	}
}
