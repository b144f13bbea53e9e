package queue

import (
	"fmt"
	"time"
)

// Schedule determines when a recurring job should next run.
type Schedule interface {
	Next(from time.Time) time.Time
	String() string
}

// clockTime pins a wall-clock time of day onto the date of d, in d's
// location. Calendar schedules build on it so hour arithmetic stays
// correct across DST transitions and non-hour zone offsets.
func clockTime(d time.Time, hour, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

type intervalSchedule struct {
	every time.Duration
}

func (s intervalSchedule) Next(from time.Time) time.Time {
	return from.Add(s.every)
}

func (s intervalSchedule) String() string {
	return fmt.Sprintf("every %v", s.every)
}

type hourlySchedule struct {
	minute int
}

func (s hourlySchedule) Next(from time.Time) time.Time {
	next := clockTime(from, from.Hour(), s.minute)
	if !next.After(from) {
		next = next.Add(time.Hour)
	}
	return next
}

func (s hourlySchedule) String() string {
	return fmt.Sprintf("hourly at :%02d", s.minute)
}

type dailySchedule struct {
	hour   int
	minute int
}

func (s dailySchedule) Next(from time.Time) time.Time {
	next := clockTime(from, s.hour, s.minute)
	if !next.After(from) {
		next = clockTime(from.AddDate(0, 0, 1), s.hour, s.minute)
	}
	return next
}

func (s dailySchedule) String() string {
	return fmt.Sprintf("daily at %02d:%02d", s.hour, s.minute)
}

type weeklySchedule struct {
	weekday time.Weekday
	hour    int
	minute  int
}

func (s weeklySchedule) Next(from time.Time) time.Time {
	// Days until the target weekday, zero when from already is that day.
	ahead := (int(s.weekday) - int(from.Weekday()) + 7) % 7

	next := clockTime(from.AddDate(0, 0, ahead), s.hour, s.minute)
	if !next.After(from) {
		next = clockTime(next.AddDate(0, 0, 7), s.hour, s.minute)
	}
	return next
}

func (s weeklySchedule) String() string {
	return fmt.Sprintf("weekly on %s at %02d:%02d", s.weekday, s.hour, s.minute)
}

type monthlySchedule struct {
	day    int
	hour   int
	minute int
}

func (s monthlySchedule) Next(from time.Time) time.Time {
	next := s.inMonth(from.Year(), from.Month(), from.Location())
	if !next.After(from) {
		// time.Date normalizes month overflow, so December+1 lands in
		// January of the following year.
		next = s.inMonth(from.Year(), from.Month()+1, from.Location())
	}
	return next
}

// inMonth places the schedule in the given month, clamping the day so
// "day 31" still fires in February.
func (s monthlySchedule) inMonth(year int, month time.Month, loc *time.Location) time.Time {
	day := min(s.day, daysInMonth(year, month))
	return time.Date(year, month, day, s.hour, s.minute, 0, 0, loc)
}

func (s monthlySchedule) String() string {
	return fmt.Sprintf("monthly on day %d at %02d:%02d", s.day, s.hour, s.minute)
}

// Every creates a schedule that fires at a fixed interval.
func Every(d time.Duration) Schedule {
	return intervalSchedule{every: d}
}

// HourlyAt creates a schedule that fires every hour at the given minute.
func HourlyAt(minute int) Schedule {
	return hourlySchedule{minute: minute}
}

// DailyAt creates a schedule that fires once per day at the given time.
func DailyAt(hour, minute int) Schedule {
	return dailySchedule{hour: hour, minute: minute}
}

// WeeklyOn creates a schedule that fires once per week on the given day and
// time.
func WeeklyOn(weekday time.Weekday, hour, minute int) Schedule {
	return weeklySchedule{weekday: weekday, hour: hour, minute: minute}
}

// MonthlyOn creates a schedule that fires once per month on the given day
// and time. Days beyond the month's end are clamped to its last day.
func MonthlyOn(day, hour, minute int) Schedule {
	return monthlySchedule{day: day, hour: hour, minute: minute}
}

// daysInMonth exploits day-zero normalization: day 0 of the following
// month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
