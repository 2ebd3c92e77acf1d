package stats

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/middleware"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"gorm.io/gorm"
)

// Collector periodically refreshes the status-count and vote-row gauges from
// the database so dashboards track triage progress without polling the API.
type Collector struct {
	db       *gorm.DB
	interval time.Duration
	running  bool
	lastRun  time.Time
	lastErr  string
	mu       sync.Mutex
	stopChan chan struct{}
}

func NewCollector(db *gorm.DB, interval time.Duration) *Collector {
	if interval == 0 {
		interval = 30 * time.Second
	}
	return &Collector{
		db:       db,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (c *Collector) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	log.Printf("[Stats] Starting with interval %v", c.interval)

	// One pass up front so gauges are populated before the first tick.
	c.collect(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.setStopped()
			return
		case <-c.stopChan:
			c.setStopped()
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		close(c.stopChan)
		c.running = false
	}
}

func (c *Collector) setStopped() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	log.Println("[Stats] Stopped")
}

func (c *Collector) collect(ctx context.Context) {
	c.mu.Lock()
	c.lastRun = time.Now()
	c.lastErr = ""
	c.mu.Unlock()

	for _, status := range model.Statuses {
		var count int64
		err := c.db.WithContext(ctx).Model(&model.Report{}).
			Where("status = ?", status).
			Count(&count).Error
		if err != nil {
			c.recordErr(err)
			return
		}
		middleware.SetReportsByStatus(status, count)
	}

	var votes int64
	if err := c.db.WithContext(ctx).Model(&model.Vote{}).Count(&votes).Error; err != nil {
		c.recordErr(err)
		return
	}
	middleware.SetVoteRows(votes)
}

func (c *Collector) recordErr(err error) {
	log.Printf("[Stats] collect failed: %v", err)
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
}

// GetStatus reports the collector state for the /stats/status endpoint.
func (c *Collector) GetStatus() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := map[string]interface{}{
		"enabled":          true,
		"running":          c.running,
		"interval_seconds": int(c.interval.Seconds()),
	}
	if !c.lastRun.IsZero() {
		status["last_run"] = c.lastRun.UTC().Format(time.RFC3339)
	}
	if c.lastErr != "" {
		status["last_error"] = c.lastErr
	}
	return status
}
