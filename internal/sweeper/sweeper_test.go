package sweeper_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ruimfonseca/nightowl/config"
	"github.com/ruimfonseca/nightowl/internal/models"
	"github.com/ruimfonseca/nightowl/internal/sweeper"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, date time.Time, state models.EventState) uuid.UUID {
	t.Helper()
	event := models.Event{
		ID:        uuid.New(),
		Name:      "seeded",
		StartTime: "22:00:00",
		Date:      date,
		State:     state,
		UserID:    uuid.New(),
	}
	require.NoError(t, db.Create(&event).Error)
	return event.ID
}

func TestSweepOnceDeactivatesExpiredActiveEvents(t *testing.T) {
	db := setupTestDB(t)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	expiredActive := seedEvent(t, db, past, models.StateActive)
	expiredPending := seedEvent(t, db, past, models.StatePending)
	upcomingActive := seedEvent(t, db, future, models.StateActive)

	s := sweeper.New(db, time.Hour, zerolog.Nop())

	updated, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	states := map[uuid.UUID]models.EventState{
		expiredActive:  models.StateDeactivated,
		expiredPending: models.StatePending,
		upcomingActive: models.StateActive,
	}
	for id, want := range states {
		var event models.Event
		require.NoError(t, db.Where("id = ?", id).First(&event).Error)
		assert.Equal(t, want, event.State, id)
	}
}

func TestSweepOnceIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	seedEvent(t, db, time.Now().Add(-24*time.Hour), models.StateActive)

	s := sweeper.New(db, time.Hour, zerolog.Nop())

	updated, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	updated, err = s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	db := setupTestDB(t)
	s := sweeper.New(db, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
