package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/auth"
)

// AuthHandler issues admin tokens against the configured allow-list. There is
// no password and no user table: an email on the list gets a token, anything
// else is refused. The allow-list is the entire credential.
type AuthHandler struct {
	jwtSecret   string
	adminEmails []string
}

func NewAuthHandler(jwtSecret string, adminEmails []string) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, adminEmails: adminEmails}
}

type AdminLoginRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed := false
	for _, admin := range h.adminEmails {
		if strings.EqualFold(admin, email) {
			allowed = true
			break
		}
	}

	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied. You are not an authorized admin."})
		return
	}

	token, err := auth.GenerateAdminToken(email, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
