package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCurrentTime(t *testing.T) {
	ctx := context.Background()

	t.Run("local default", func(t *testing.T) {
		env := GetCurrentTime(ctx, GetCurrentTimeInput{})
		assert.False(t, env.Failed())
		assert.Equal(t, "local", env["timezone"])
		assert.NotEmpty(t, env["current_time"])
		assert.NotEmpty(t, env["day_of_week"])
		assert.Greater(t, env["timestamp"].(float64), 0.0)

		_, err := time.Parse("2006-01-02", env["date"].(string))
		assert.Nil(t, err)
		_, err = time.Parse("15:04:05", env["time"].(string))
		assert.Nil(t, err)
	})

	t.Run("named zone", func(t *testing.T) {
		env := GetCurrentTime(ctx, GetCurrentTimeInput{Timezone: "UTC"})
		assert.False(t, env.Failed())
		assert.Equal(t, "UTC", env["timezone"])
	})

	t.Run("unknown zone", func(t *testing.T) {
		env := GetCurrentTime(ctx, GetCurrentTimeInput{Timezone: "Not/AZone"})
		assert.True(t, env.Failed())
	})
}

func TestCalculateTimeDifference(t *testing.T) {
	ctx := context.Background()

	t.Run("signed difference in all units", func(t *testing.T) {
		env := CalculateTimeDifference(ctx, TimeDifferenceInput{
			StartTime: "2024-01-01T00:00:00",
			EndTime:   "2024-01-02T02:00:00",
		})
		assert.False(t, env.Failed())
		assert.Equal(t, 26*3600.0, env["difference_seconds"])
		assert.Equal(t, 26*60.0, env["difference_minutes"])
		assert.Equal(t, 26.0, env["difference_hours"])
		assert.Equal(t, 1, env["difference_days"])
		assert.Equal(t, "26h0m0s", env["formatted"])
	})

	t.Run("reversed endpoints negate the seconds", func(t *testing.T) {
		a, b := "2024-03-01T10:00:00", "2024-03-05T22:30:00"
		forward := CalculateTimeDifference(ctx, TimeDifferenceInput{StartTime: a, EndTime: b})
		backward := CalculateTimeDifference(ctx, TimeDifferenceInput{StartTime: b, EndTime: a})
		assert.False(t, forward.Failed())
		assert.False(t, backward.Failed())
		assert.Equal(t, forward["difference_seconds"].(float64), -backward["difference_seconds"].(float64))
	})

	t.Run("negative differences floor the days", func(t *testing.T) {
		env := CalculateTimeDifference(ctx, TimeDifferenceInput{
			StartTime: "2024-01-01T00:00:01",
			EndTime:   "2024-01-01T00:00:00",
		})
		assert.False(t, env.Failed())
		assert.Equal(t, -1.0, env["difference_seconds"])
		assert.Equal(t, -1, env["difference_days"])
	})

	t.Run("rfc3339 timestamps with offsets", func(t *testing.T) {
		env := CalculateTimeDifference(ctx, TimeDifferenceInput{
			StartTime: "2024-01-01T00:00:00Z",
			EndTime:   "2024-01-01T01:00:00+01:00",
		})
		assert.False(t, env.Failed())
		assert.Equal(t, 0.0, env["difference_seconds"])
	})

	t.Run("caller-supplied layout", func(t *testing.T) {
		env := CalculateTimeDifference(ctx, TimeDifferenceInput{
			StartTime: "01/02/2020",
			EndTime:   "01/05/2020",
			Format:    "01/02/2006",
		})
		assert.False(t, env.Failed())
		assert.Equal(t, 3*86400.0, env["difference_seconds"])
		assert.Equal(t, 3, env["difference_days"])
	})

	t.Run("unparseable start time", func(t *testing.T) {
		env := CalculateTimeDifference(ctx, TimeDifferenceInput{
			StartTime: "not-a-time",
			EndTime:   "2024-01-01T00:00:00",
		})
		assert.True(t, env.Failed())
		assert.Contains(t, env["error"], "start_time")
	})
}
