package handlers

import (
	"net/http"
	"strconv"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// SaveFCMTokenHandler registers a device token for push notifications
// @Summary Register FCM device token
// @Description Store the caller's Firebase device token so push alerts can reach it
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body object true "Device token" SchemaExample({"user_id": 1, "token": "string"})
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/users/fcm-token [post]
func SaveFCMTokenHandler(fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fcm == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
			return
		}

		var req struct {
			UserID int    `json:"user_id" binding:"required"`
			Token  string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and token are required"})
			return
		}

		if err := fcm.SaveFCMToken(req.UserID, req.Token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save device token", "details": err.Error()})
			return
		}

		utils.SuccessResponse(c, "Device token registered", http.StatusOK)
	}
}

// RemoveFCMTokenHandler clears a user's device token
// @Summary Remove FCM device token
// @Description Clear the stored device token, typically on logout
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body object true "User" SchemaExample({"user_id": 1})
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/users/fcm-token [delete]
func RemoveFCMTokenHandler(fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fcm == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
			return
		}

		var req struct {
			UserID int `json:"user_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		if err := fcm.RemoveFCMToken(req.UserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove device token", "details": err.Error()})
			return
		}

		utils.SuccessResponse(c, "Device token removed", http.StatusOK)
	}
}

// NotifyUserHandler pushes a message to one team member's device
// @Summary Send notification to user
// @Description Push a direct message to a user's registered device (admin only). A user without a registered token is not an error.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body object true "Notification" SchemaExample({"title": "string", "body": "string"})
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/users/{user_id}/notify [post]
func NotifyUserHandler(fcm *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fcm == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
			return
		}

		userID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var req struct {
			Title string `json:"title" binding:"required"`
			Body  string `json:"body" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
			return
		}

		if err := fcm.SendNotificationToUser(c.Request.Context(), userID, req.Title, req.Body, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification", "details": err.Error()})
			return
		}

		utils.SuccessResponse(c, "Notification sent", http.StatusOK)
	}
}
