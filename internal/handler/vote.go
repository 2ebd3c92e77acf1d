package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/middleware"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"gorm.io/gorm"
)

type VoteHandler struct {
	db *gorm.DB
}

func NewVoteHandler(db *gorm.DB) *VoteHandler {
	return &VoteHandler{db: db}
}

type ToggleVoteRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Toggle adds a vote for (report, user), or removes it when one already
// exists. No lock around the check: two racing toggles by the same user are
// resolved by the unique index, where one insert succeeds and the other hits
// the duplicate-key path.
func (h *VoteHandler) Toggle(c *gin.Context) {
	reportID := c.Param("id")

	var req ToggleVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}

	vote := model.Vote{
		ReportID: reportID,
		UserID:   req.UserID,
	}

	err := h.db.Create(&vote).Error
	if err == nil {
		middleware.RecordVoteToggle("added")
		c.JSON(http.StatusOK, gin.H{"message": "Vote added"})
		return
	}

	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Duplicate key means this user already voted: toggle it off.
	err = h.db.Where("report_id = ? AND user_id = ?", reportID, req.UserID).
		Delete(&model.Vote{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	middleware.RecordVoteToggle("removed")
	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

// Count returns the number of votes on a report, 0 when none.
func (h *VoteHandler) Count(c *gin.Context) {
	reportID := c.Param("id")

	var count int64
	err := h.db.Model(&model.Vote{}).
		Where("report_id = ?", reportID).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count votes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
