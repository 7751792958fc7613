package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetMissingReturnsEmptyLedger(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	stats, err := c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, "p1", stats.ProjectID)
	assert.Equal(t, 0, stats.Total())
}

func TestStatsService_RecordDeltaAccumulates(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	require.NoError(t, c.Stats.RecordDelta(ctx, "p1", 100))
	require.NoError(t, c.Stats.RecordDelta(ctx, "p1", 50))

	stats, err := c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 150, stats.Today(time.Now()))
	assert.Equal(t, 150, stats.Total())
}

func TestStatsService_RecordDelta_IgnoresNegative(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	require.NoError(t, c.Stats.RecordDelta(ctx, "p1", 100))
	require.NoError(t, c.Stats.RecordDelta(ctx, "p1", -40))
	require.NoError(t, c.Stats.RecordDelta(ctx, "p1", 0))

	stats, err := c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Total())
}

func TestStatsService_Summary(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	require.NoError(t, c.Stats.RecordDelta(ctx, "p1", 300))

	summary, err := c.Stats.Summary(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", summary.ProjectID)
	assert.Equal(t, 300, summary.TodayWords)
	assert.Equal(t, 300, summary.TotalWords)
	assert.Equal(t, 300, summary.WeekWords)
	assert.Equal(t, 1, summary.StreakDays)
	assert.Equal(t, 300, summary.AverageDailyWords)
	assert.False(t, summary.LastUpdated.IsZero())
}
