package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stayforge/hotelops/pkg/queue"
)

func TestEvery(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	s := queue.Every(45 * time.Minute)

	assert.Equal(t, from.Add(45*time.Minute), s.Next(from))
	assert.Equal(t, "every 45m0s", s.String())
}

func TestHourlyAt(t *testing.T) {
	t.Parallel()

	s := queue.HourlyAt(15)

	t.Run("before the minute", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 10, 14, 5, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 10, 14, 15, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("after the minute rolls to next hour", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 10, 15, 15, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("exactly on the minute rolls forward", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 10, 14, 15, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 10, 15, 15, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hourly at :15", s.String())
	})
}

func TestDailyAt(t *testing.T) {
	t.Parallel()

	s := queue.DailyAt(2, 0)

	t.Run("later today", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 10, 2, 0, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 11, 2, 0, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "daily at 02:00", s.String())
	})
}

func TestWeeklyOn(t *testing.T) {
	t.Parallel()

	// 2025-03-10 is a Monday.
	s := queue.WeeklyOn(time.Friday, 18, 30)

	t.Run("later this week", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
		got := s.Next(from)
		assert.Equal(t, time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC), got)
		assert.Equal(t, time.Friday, got.Weekday())
	})

	t.Run("wraps to next week", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 14, 20, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 21, 18, 30, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("same day before the time", func(t *testing.T) {
		t.Parallel()

		from := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "weekly on Friday at 18:30", s.String())
	})
}

func TestMonthlyOn(t *testing.T) {
	t.Parallel()

	t.Run("later this month", func(t *testing.T) {
		t.Parallel()

		s := queue.MonthlyOn(15, 6, 0)
		from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.March, 15, 6, 0, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("already passed rolls to next month", func(t *testing.T) {
		t.Parallel()

		s := queue.MonthlyOn(15, 6, 0)
		from := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.April, 15, 6, 0, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("day 31 clamps to short months", func(t *testing.T) {
		t.Parallel()

		s := queue.MonthlyOn(31, 3, 0)
		from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, time.February, 28, 3, 0, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("december rolls to january", func(t *testing.T) {
		t.Parallel()

		s := queue.MonthlyOn(1, 0, 0)
		from := time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), s.Next(from))
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "monthly on day 1 at 04:30", queue.MonthlyOn(1, 4, 30).String())
	})
}
