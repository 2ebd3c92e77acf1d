package stats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/database"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCollectorCollect(t *testing.T) {
	db := newTestDB(t)

	report := model.Report{UserID: "user-abc", Category: model.CategoryTrash, Lat: 1, Lng: 2, Status: model.StatusOpen}
	require.NoError(t, db.Create(&report).Error)

	c := NewCollector(db, time.Minute)
	c.collect(context.Background())

	status := c.GetStatus()
	assert.Contains(t, status, "last_run")
	assert.NotContains(t, status, "last_error")
}

func TestCollectorStartStop(t *testing.T) {
	db := newTestDB(t)

	c := NewCollector(db, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		c.Start(context.Background())
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	c.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}

	status := c.GetStatus()
	assert.Equal(t, false, status["running"])
}

func TestCollectorDefaultInterval(t *testing.T) {
	c := NewCollector(newTestDB(t), 0)
	assert.Equal(t, 30, c.GetStatus()["interval_seconds"])
}
