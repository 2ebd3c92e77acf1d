package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/cache"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"gorm.io/gorm"
)

const (
	leaderboardSize     = 10
	scorePerReport      = 10
	leaderboardCacheTTL = 30 * time.Second
)

type LeaderboardHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

type LeaderboardEntry struct {
	UserID  string `json:"userId"`
	Reports int64  `json:"reports"`
	Votes   int64  `json:"votes"`
	Score   int64  `json:"score"`
}

func NewLeaderboardHandler(db *gorm.DB, redisCache *cache.RedisCache) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, cache: redisCache}
}

// Get returns the top reporters: reports grouped per user, 10 points each,
// votes received not counted. Aggregation happens in SQL, not in memory.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	if entries, ok := h.fromCache(c); ok {
		c.JSON(http.StatusOK, entries)
		return
	}

	type userCount struct {
		UserID      string
		ReportCount int64
	}

	var counts []userCount
	err := h.db.Model(&model.Report{}).
		Select("user_id, count(*) as report_count").
		Where("user_id <> ''").
		Group("user_id").
		Order("report_count DESC").
		Limit(leaderboardSize).
		Scan(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	entries := make([]LeaderboardEntry, 0, len(counts))
	for _, row := range counts {
		entries = append(entries, LeaderboardEntry{
			UserID:  row.UserID,
			Reports: row.ReportCount,
			Votes:   0, // placeholder, votes received are not scored
			Score:   row.ReportCount * scorePerReport,
		})
	}

	h.toCache(c, entries)

	c.JSON(http.StatusOK, entries)
}

func (h *LeaderboardHandler) fromCache(c *gin.Context) ([]LeaderboardEntry, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, err := h.cache.Get(c.Request.Context(), cache.LeaderboardKey)
	if err != nil {
		return nil, false
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (h *LeaderboardHandler) toCache(c *gin.Context, entries []LeaderboardEntry) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	_ = h.cache.Set(c.Request.Context(), cache.LeaderboardKey, raw, leaderboardCacheTTL)
}
