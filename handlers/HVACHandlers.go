package handlers

import (
	"net/http"

	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetHVACRecords godoc
// @Summary      List HVAC maintenance records
// @Tags         hvac
// @Param        building  query  string  false  "Filter by building, case-insensitive substring"
// @Param        status    query  string  false  "Filter by status"
// @Success      200  {array}  models.HVACRecord
// @Router       /api/hvac [get]
func GetHVACRecords(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.HVACRecord{})

		if building := c.Query("building"); building != "" {
			query = query.Where("building ILIKE ?", "%"+building+"%")
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var records []models.HVACRecord
		if err := query.Order("building, equipment").Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, records)
	}
}

// GetHVACSummary godoc
// @Summary      HVAC maintenance summary
// @Tags         hvac
// @Success      200  {object}  models.HVACSummary
// @Router       /api/hvac/summary [get]
func GetHVACSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []models.HVACRecord
		if err := db.Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var summary models.HVACSummary
		buildings := make(map[string]struct{})
		for _, r := range records {
			summary.TotalRecords++
			buildings[r.Building] = struct{}{}
			summary.TotalQuotedOMR += r.QuoteAmountOMR
			switch r.Status {
			case models.HVACStatusCompleted:
				summary.Completed++
			case models.HVACStatusOngoing:
				summary.Ongoing++
			case models.HVACStatusPending:
				summary.Pending++
			case models.HVACStatusQuoted:
				summary.QuoteSubmitted++
			}
		}
		summary.Buildings = len(buildings)

		c.JSON(http.StatusOK, summary)
	}
}

// CreateHVACRecord godoc
// @Summary      Add an HVAC maintenance record
// @Tags         hvac
// @Accept       json
// @Param        body  body      models.HVACRecord  true  "HVAC record"
// @Success      201   {object}  models.HVACRecord
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/hvac [post]
func CreateHVACRecord(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record models.HVACRecord
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if record.Status == "" {
			record.Status = models.HVACStatusPending
		}

		if err := db.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, record)
	}
}

// UpdateHVACRecord godoc
// @Summary      Update an HVAC maintenance record
// @Tags         hvac
// @Accept       json
// @Param        id    path  int                true  "Record ID"
// @Param        body  body  models.HVACRecord  true  "HVAC record"
// @Success      200   {object}  models.HVACRecord
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/hvac/{id} [put]
func UpdateHVACRecord(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var existing models.HVACRecord
		if err := db.First(&existing, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "HVAC record not found"})
			return
		}

		var record models.HVACRecord
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		record.ID = existing.ID

		if err := db.Save(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, record)
	}
}
