package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"
	"backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetFirefightingStats godoc
// @Summary      Fire safety dashboard stats
// @Description  Equipment, finding and PPM counts plus the compliance rate (completed PPMs over total, as a percentage).
// @Tags         firefighting
// @Produce      json
// @Success      200  {object}  models.FirefightingStats
// @Router       /api/firefighting/stats [get]
func GetFirefightingStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats models.FirefightingStats

		var totalEquipment, activeEquipment, faultyEquipment int64
		db.Model(&models.Equipment{}).Count(&totalEquipment)
		db.Model(&models.Equipment{}).Where("status = ?", models.EquipmentStatusActive).Count(&activeEquipment)
		db.Model(&models.Equipment{}).Where("status = ?", models.EquipmentStatusFaulty).Count(&faultyEquipment)

		var criticalFindings, openFindings int64
		db.Model(&models.PPMFinding{}).
			Where("severity = ? AND status != ?", models.SeverityCritical, models.FindingStatusClosed).
			Count(&criticalFindings)
		db.Model(&models.PPMFinding{}).Where("status = ?", models.FindingStatusOpen).Count(&openFindings)

		var totalPPMs, completedPPMs, pendingPPMs int64
		db.Model(&models.PPMRecord{}).Count(&totalPPMs)
		db.Model(&models.PPMRecord{}).Where("overall_status = ?", models.PPMStatusCompleted).Count(&completedPPMs)
		db.Model(&models.PPMRecord{}).Where("overall_status = ?", models.PPMStatusPending).Count(&pendingPPMs)

		var upcoming int64
		db.Model(&models.PPMRecord{}).
			Where("overall_status = ? AND ppm_date BETWEEN ? AND ?",
				models.PPMStatusPending, time.Now(), time.Now().AddDate(0, 0, 30)).
			Count(&upcoming)

		stats.TotalEquipment = int(totalEquipment)
		stats.ActiveEquipment = int(activeEquipment)
		stats.FaultyEquipment = int(faultyEquipment)
		stats.CriticalFindings = int(criticalFindings)
		stats.OpenFindings = int(openFindings)
		stats.PendingPPMs = int(pendingPPMs)
		stats.UpcomingInspections = int(upcoming)
		if totalPPMs > 0 {
			stats.ComplianceRate = float64(completedPPMs) / float64(totalPPMs) * 100
		}

		c.JSON(http.StatusOK, stats)
	}
}

// GetEquipment godoc
// @Summary      List fire safety equipment
// @Tags         firefighting
// @Produce      json
// @Param        status       query     string  false  "Filter by status"
// @Param        location_id  query     int     false  "Filter by location"
// @Success      200  {array}  models.Equipment
// @Router       /api/firefighting/equipment [get]
func GetEquipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("EquipmentType").Preload("Location")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if locationID := c.Query("location_id"); locationID != "" {
			query = query.Where("location_id = ?", locationID)
		}

		var equipment []models.Equipment
		if err := query.Order("equipment_code").Find(&equipment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, equipment)
	}
}

// GetEquipmentByID godoc
// @Summary      Get equipment by ID
// @Tags         firefighting
// @Param        id  path  int  true  "Equipment ID"
// @Success      200  {object}  models.Equipment
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/firefighting/equipment/{id} [get]
func GetEquipmentByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var equipment models.Equipment
		err := db.Preload("EquipmentType").Preload("Location").
			First(&equipment, c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Equipment not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, equipment)
	}
}

// CreateEquipment godoc
// @Summary      Register equipment
// @Tags         firefighting
// @Accept       json
// @Param        body  body      models.Equipment  true  "Equipment"
// @Success      201   {object}  models.Equipment
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/firefighting/equipment [post]
func CreateEquipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var equipment models.Equipment
		if err := c.ShouldBindJSON(&equipment); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if equipment.Status == "" {
			equipment.Status = models.EquipmentStatusActive
		}

		if err := db.Create(&equipment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, equipment)
	}
}

// UpdateEquipmentStatus godoc
// @Summary      Update equipment status
// @Tags         firefighting
// @Accept       json
// @Param        id    path  int     true  "Equipment ID"
// @Param        body  body  object  true  "{\"status\": \"Faulty\"}"
// @Success      200   {object}  models.SuccessResponse
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/firefighting/equipment/{id}/status [put]
func UpdateEquipmentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch body.Status {
		case models.EquipmentStatusActive, models.EquipmentStatusFaulty,
			models.EquipmentStatusMaintenance, models.EquipmentStatusInactive:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment status"})
			return
		}

		result := db.Model(&models.Equipment{}).Where("id = ?", c.Param("id")).Update("status", body.Status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Equipment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Equipment status updated"})
	}
}

// GetEquipmentTypes godoc
// @Summary      List equipment types
// @Tags         firefighting
// @Success      200  {array}  models.EquipmentType
// @Router       /api/firefighting/equipment-types [get]
func GetEquipmentTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var types []models.EquipmentType
		if err := db.Order("type_code").Find(&types).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, types)
	}
}

// GetPPMLocations godoc
// @Summary      List PPM locations
// @Tags         firefighting
// @Success      200  {array}  models.PPMLocation
// @Router       /api/firefighting/locations [get]
func GetPPMLocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var locations []models.PPMLocation
		if err := db.Where("active = ?", true).Order("location_code").Find(&locations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, locations)
	}
}

// GetPPMRecords godoc
// @Summary      List PPM inspection records
// @Tags         firefighting
// @Param        location_id  query  int     false  "Filter by location"
// @Param        status       query  string  false  "Filter by overall status"
// @Success      200  {array}  models.PPMRecord
// @Router       /api/firefighting/ppm [get]
func GetPPMRecords(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Location").Preload("Findings")

		if locationID := c.Query("location_id"); locationID != "" {
			query = query.Where("location_id = ?", locationID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("overall_status = ?", status)
		}

		var records []models.PPMRecord
		if err := query.Order("ppm_date DESC").Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, records)
	}
}

// CreatePPMRecord godoc
// @Summary      Record a PPM inspection
// @Tags         firefighting
// @Accept       json
// @Param        body  body      models.PPMRecord  true  "PPM record"
// @Success      201   {object}  models.PPMRecord
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/firefighting/ppm [post]
func CreatePPMRecord(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record models.PPMRecord
		if err := c.ShouldBindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if record.OverallStatus == "" {
			record.OverallStatus = models.PPMStatusPending
		}

		if err := db.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, record)
	}
}

// CreateFinding godoc
// @Summary      Record a PPM finding
// @Description  Records an inspection finding. Critical findings trigger a push alert to admin users when FCM is configured.
// @Tags         firefighting
// @Accept       json
// @Param        body  body      models.CreateFindingRequest  true  "Finding"
// @Success      201   {object}  models.PPMFinding
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/firefighting/findings [post]
func CreateFinding(db *gorm.DB, fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateFindingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch req.Severity {
		case models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
			return
		}

		var record models.PPMRecord
		if err := db.Preload("Location").First(&record, req.PPMRecordID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "PPM record not found"})
			return
		}

		finding := models.PPMFinding{
			PPMRecordID:        req.PPMRecordID,
			FindingDescription: req.FindingDescription,
			Severity:           req.Severity,
			Status:             models.FindingStatusOpen,
			RecommendedAction:  req.RecommendedAction,
			SparePartsRequired: req.SparePartsRequired,
			EstimatedCost:      req.EstimatedCost,
		}
		if err := db.Create(&finding).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if req.Severity == models.SeverityCritical && fcm != nil {
			go notifyAdminsOfCriticalFinding(fcm, &record, &finding)
		}

		c.JSON(http.StatusCreated, finding)
	}
}

// notifyAdminsOfCriticalFinding pushes a critical-finding alert to every
// admin user with a registered device token.
func notifyAdminsOfCriticalFinding(fcm *services.FCMService, record *models.PPMRecord, finding *models.PPMFinding) {
	sqlDB := storage.GetDB()
	if sqlDB == nil {
		return
	}

	rows, err := sqlDB.Query(`SELECT id FROM users WHERE is_admin = true AND suspended = false`)
	if err != nil {
		log.Printf("failed to load admin users for critical finding alert: %v", err)
		return
	}
	defer rows.Close()

	var adminIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			continue
		}
		adminIDs = append(adminIDs, id)
	}
	if len(adminIDs) == 0 {
		return
	}

	location := "unknown location"
	if record.Location != nil {
		location = record.Location.LocationName
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = fcm.SendNotificationToUsers(ctx, adminIDs,
		"Critical fire safety finding",
		finding.FindingDescription+" at "+location,
		map[string]string{
			"finding_id": strconv.FormatUint(uint64(finding.ID), 10),
			"severity":   finding.Severity,
		})
	if err != nil {
		log.Printf("failed to send critical finding alert: %v", err)
	}
}

// UpdateFindingStatus godoc
// @Summary      Update finding status
// @Tags         firefighting
// @Accept       json
// @Param        id    path  int     true  "Finding ID"
/// @Param        body  body  object  true  "{\"status\": \"Closed\"}"
// @Success      200   {object}  models.SuccessResponse
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/firefighting/findings/{id}/status [put]
func UpdateFindingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch body.Status {
		case models.FindingStatusOpen, models.FindingStatusInProgress, models.FindingStatusClosed:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid finding status"})
			return
		}

		result := db.Model(&models.PPMFinding{}).Where("id = ?", c.Param("id")).Update("status", body.Status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Finding not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Finding status updated"})
	}
}
