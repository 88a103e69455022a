package handlers

import (
	"net/http"
	"time"

	"backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetContracts godoc
// @Summary      List service contracts
// @Tags         contractor
// @Param        status  query  string  false  "Filter by status (Active, Expired)"
// @Success      200  {array}  models.Contract
// @Router       /api/contractor [get]
func GetContracts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Contract{})
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var contracts []models.Contract
		if err := query.Order("contractor").Find(&contracts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, contracts)
	}
}

// GetContractorSummary godoc
// @Summary      Contract overview
// @Description  Contract counts, total annual value, and the number of active contracts expiring within 90 days.
// @Tags         contractor
// @Success      200  {object}  models.ContractorSummary
// @Router       /api/contractor/summary [get]
func GetContractorSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contracts []models.Contract
		if err := db.Find(&contracts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		horizon := now.AddDate(0, 0, 90)

		var summary models.ContractorSummary
		for _, contract := range contracts {
			summary.TotalContracts++
			summary.TotalAnnualOMR += contract.AnnualValueOMR
			switch contract.Status {
			case models.ContractStatusActive:
				summary.ActiveContracts++
				if contract.EndDate != nil && contract.EndDate.After(now) && contract.EndDate.Before(horizon) {
					summary.ExpiringSoon++
				}
			case models.ContractStatusExpired:
				summary.ExpiredContracts++
			}
		}

		c.JSON(http.StatusOK, summary)
	}
}

// CreateContract godoc
// @Summary      Add a service contract
// @Tags         contractor
// @Accept       json
// @Param        body  body      models.Contract  true  "Contract"
// @Success      201   {object}  models.Contract
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/contractor [post]
func CreateContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contract models.Contract
		if err := c.ShouldBindJSON(&contract); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if contract.Status == "" {
			contract.Status = models.ContractStatusActive
		}

		if err := db.Create(&contract).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, contract)
	}
}

// UpdateContract godoc
// @Summary      Update a service contract
// @Tags         contractor
// @Accept       json
// @Param        id    path  int              true  "Contract ID"
// @Param        body  body  models.Contract  true  "Contract"
// @Success      200   {object}  models.Contract
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/contractor/{id} [put]
func UpdateContract(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var existing models.Contract
		if err := db.First(&existing, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}

		var contract models.Contract
		if err := c.ShouldBindJSON(&contract); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		contract.ID = existing.ID

		if err := db.Save(&contract).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, contract)
	}
}

// MarkExpiredContracts flips Active contracts whose end date has passed to
// Expired. Run daily from the maintenance cron.
func MarkExpiredContracts(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Contract{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.ContractStatusActive, time.Now()).
		Update("status", models.ContractStatusExpired)
	return result.RowsAffected, result.Error
}
