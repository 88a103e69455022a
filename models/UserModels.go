package models

import (
	"database/sql"
	"errors"
	"time"
)

// User represents the users table for the facilities team.
type User struct {
	ID          int       `json:"id" example:"1"`
	Email       string    `json:"email" example:"ops@muscatbay.com"`
	Password    string    `json:"password" example:""`
	FirstName   string    `json:"first_name" example:"Ahmed"`
	LastName    string    `json:"last_name" example:"Al Busaidi"`
	IsAdmin     bool      `json:"is_admin" example:"false"`
	PhoneNo     string    `json:"phone_no" example:"91234567"`
	Suspended   bool      `json:"suspended" example:"false"`
	CreatedAt   time.Time `json:"created_at" example:"2025-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2025-01-15T10:30:00Z"`
	LastAccess  time.Time `json:"last_access,omitempty" example:"2025-01-15T10:30:00Z"`
}

// Session represents one logged-in device for a user.
type Session struct {
	UserID                int       `json:"user_id"`
	SessionID             string    `json:"session_id"`
	HostName              string    `json:"host_name"`
	IPAddress             string    `json:"ip_address"`
	Timestamp             time.Time `json:"timestp"`
	ExpiresAt             time.Time `json:"expires_at"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
}

func GetSessionBySessionID(db *sql.DB, sessionID string) (*Session, error) {
	query := `SELECT session_id, user_id, host_name, timestp FROM session WHERE session_id = $1`

	var session Session

	err := db.QueryRow(query, sessionID).Scan(&session.SessionID, &session.UserID, &session.HostName, &session.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("session not found")
		}
		return nil, err
	}

	return &session, nil
}

// Swagger / API docs: common request and response models referenced by handler annotations

// ErrorResponse is used in @Failure for error responses
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ops@muscatbay.com"`
	Password string `json:"password" binding:"required" example:"password"`
	IP       string `json:"ip" example:"192.168.1.1"`
}

// LoginResponse is used in @Success for login
type LoginResponse struct {
	Message     string    `json:"message" example:"User successfully logged in"`
	AccessToken string    `json:"access_token" example:"eyJhbGc..."`
	SessionID   string    `json:"session_id" example:"b2f0..."`
	User        LoginUser `json:"user"`
}

// LoginUser is the user object inside LoginResponse
type LoginUser struct {
	ID      int    `json:"id" example:"1"`
	Email   string `json:"email" example:"ops@muscatbay.com"`
	IsAdmin bool   `json:"is_admin" example:"false"`
}

// SuccessResponse is used in @Success for generic success
type SuccessResponse struct {
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}
