package handlers

import (
	"backend/utils"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// CreateUserHandler creates a new team member account
// @Summary Create user
// @Description Create a facilities team account (admin only)
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body object true "New user" SchemaExample({"email": "ops@muscatbay.com", "password": "string", "first_name": "Ahmed", "last_name": "Al Busaidi", "phone_no": "91234567", "is_admin": false})
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/users [post]
func CreateUserHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=8"`
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name"`
			PhoneNo   string `json:"phone_no"`
			IsAdmin   bool   `json:"is_admin"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		var newID int
		err = db.QueryRow(`
			INSERT INTO users (email, password, first_name, last_name, phone_no, is_admin, suspended, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, false, NOW(), NOW())
			RETURNING id`,
			req.Email, hashed, req.FirstName, req.LastName, req.PhoneNo, req.IsAdmin).Scan(&newID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created",
			"user": gin.H{
				"id":       newID,
				"email":    req.Email,
				"is_admin": req.IsAdmin,
			},
		})
	}
}

// SuspendUserHandler toggles the suspended flag on an account
// @Summary Suspend or reinstate user
// @Description Suspended accounts cannot log in or refresh tokens (admin only)
// @Tags Authentication
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body object true "Suspension state" SchemaExample({"suspended": true})
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{user_id}/suspend [put]
func SuspendUserHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		var req struct {
			Suspended *bool `json:"suspended" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "suspended is required"})
			return
		}

		result, err := db.Exec(`UPDATE users SET suspended = $1, updated_at = NOW() WHERE id = $2`, *req.Suspended, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user", "details": err.Error()})
			return
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Suspension takes effect immediately, not at next token expiry.
		if *req.Suspended {
			_, _ = db.Exec(`DELETE FROM session WHERE user_id = $1`, userID)
		}

		utils.SuccessResponse(c, "User updated", http.StatusOK)
	}
}
