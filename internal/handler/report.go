package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/cache"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/limiter"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/middleware"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/validator"
	"gorm.io/gorm"
)

const listLimit = 100

type ReportHandler struct {
	db      *gorm.DB
	limiter *limiter.Limiter
	cache   *cache.RedisCache
}

func NewReportHandler(db *gorm.DB, l *limiter.Limiter, redisCache *cache.RedisCache) *ReportHandler {
	return &ReportHandler{db: db, limiter: l, cache: redisCache}
}

// Lat/Lng are pointers so an omitted coordinate fails binding instead of
// defaulting to 0,0 in the Atlantic; an explicit 0 still passes.
type CreateReportRequest struct {
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat" binding:"required"`
	Lng         *float64 `json:"lng" binding:"required"`
	PhotoURL    string   `json:"photoUrl"`
	UserID      string   `json:"userId" binding:"required"`
}

// Create persists a new report with status OPEN. One submission per client IP
// per cooldown window.
func (h *ReportHandler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	if err := validator.ValidateReport(validator.ReportInput{
		Category:    req.Category,
		Description: req.Description,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		PhotoURL:    req.PhotoURL,
		UserID:      req.UserID,
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.limiter != nil {
		result := h.limiter.Allow(c.Request.Context(), c.ClientIP())
		if !result.Allowed {
			middleware.RecordRateLimited()
			c.Header("Retry-After", result.RetryAfter.Round(time.Second).String())
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "You're reporting too fast. Please wait a few seconds."})
			return
		}
	}

	report := model.Report{
		UserID:      req.UserID,
		Category:    req.Category,
		Description: req.Description,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		PhotoURL:    req.PhotoURL,
		Status:      model.StatusOpen,
	}

	if err := h.db.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	// Re-read so the response carries the stored row, defaults included.
	var created model.Report
	if err := h.db.First(&created, "id = ?", report.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load created report"})
		return
	}

	middleware.RecordReportCreated(created.Category)
	h.invalidateLeaderboard(c.Request.Context())

	c.JSON(http.StatusCreated, created)
}

// List returns up to 100 reports, newest first.
func (h *ReportHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > listLimit {
		limit = listLimit
	}

	var reports []model.Report
	err := h.db.Order("created_at DESC").Limit(limit).Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	// Keep the body a JSON array even with zero rows.
	if reports == nil {
		reports = []model.Report{}
	}

	c.JSON(http.StatusOK, reports)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus sets a report's status. Any status is reachable from any
// other; the admin UI exposes all three transitions unconditionally. Zero
// rows affected still answers success, so callers must not assume the id
// existed.
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	reportID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validator.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	err := h.db.Model(&model.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *ReportHandler) invalidateLeaderboard(ctx context.Context) {
	if h.cache == nil {
		return
	}
	_ = h.cache.Delete(ctx, cache.LeaderboardKey)
}
