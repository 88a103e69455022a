package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"backend/models"
	"backend/repository"
	"backend/services"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// Electricity billing year runs Aug-24 through Jul-25.
const (
	defaultElecStartMonth = "2024-08"
	defaultElecEndMonth   = "2025-07"
)

func loadElectricityMeters(c *gin.Context, db *sql.DB) ([]models.ElectricityMeter, bool) {
	meters, err := repository.FetchElectricityMeters(c.Request.Context(), db)
	if err != nil {
		log.Printf("electricity meters query failed, serving fallback data: %v", err)
		return storage.FallbackElectricityMeters(), true
	}
	return meters, false
}

// GetElectricityMeters godoc
// @Summary      List electricity meters
// @Tags         electricity
// @Produce      json
// @Success      200  {array}  models.ElectricityMeter
// @Router       /api/electricity/meters [get]
func GetElectricityMeters(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		meters, degraded := loadElectricityMeters(c, db)
		if degraded {
			c.JSON(http.StatusOK, gin.H{
				"meters":   meters,
				"count":    len(meters),
				"degraded": true,
				"message":  storage.FallbackConnectionMessage,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"meters": meters, "count": len(meters), "degraded": false})
	}
}

// GetElectricityAnalysis godoc
// @Summary      Electricity consumption analysis
// @Description  Totals, cost at the standard tariff, monthly trend and per-type breakdown over a billing-month range.
// @Tags         electricity
// @Produce      json
// @Param        start_month  query     string  false  "First month, YYYY-MM"  default(2024-08)
// @Param        end_month    query     string  false  "Last month, YYYY-MM"   default(2025-07)
// @Success      200  {object}  models.ElectricityAnalysis
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/electricity/analysis [get]
func GetElectricityAnalysis(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		startMonth := c.DefaultQuery("start_month", defaultElecStartMonth)
		endMonth := c.DefaultQuery("end_month", defaultElecEndMonth)

		meters, degraded := loadElectricityMeters(c, db)

		analysis, err := services.AnalyzeElectricity(meters, startMonth, endMonth)
		if err != nil {
			if errors.Is(err, services.ErrInvalidRange) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		analysis.Degraded = degraded
		if degraded {
			analysis.Message = storage.FallbackConnectionMessage
		}
		c.JSON(http.StatusOK, analysis)
	}
}
