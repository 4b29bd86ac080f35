package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	// Wednesday goes back two days.
	require.Equal(t, date(2024, 3, 4), MondayOf(date(2024, 3, 6)))
	// Monday is already aligned.
	require.Equal(t, date(2024, 3, 4), MondayOf(date(2024, 3, 4)))
	// Sunday belongs to the end of the week.
	require.Equal(t, date(2024, 3, 4), MondayOf(date(2024, 3, 10)))
	// Across a month boundary.
	require.Equal(t, date(2024, 2, 26), MondayOf(date(2024, 3, 1)))
}

func TestWeekNumber_ISOReferenceDates(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{date(2024, 1, 1), 1},  // Monday, week 1 of 2024
		{date(2023, 1, 1), 52}, // Sunday, still ISO week 52 of 2022
		{date(2021, 1, 4), 1},  // first Monday of 2021
		{date(2020, 12, 31), 53}, // 2020 has 53 ISO weeks
		{date(2024, 12, 30), 1},  // Monday, already week 1 of 2025
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, WeekNumber(tc.date), "weekNumber(%s)", FormatDate(tc.date))
	}
}

func TestWeekNumber_MatchesStdlib(t *testing.T) {
	// Spot-check a full year against the standard library's ISO weeks.
	for d := date(2023, 1, 1); d.Year() == 2023; d = d.AddDate(0, 0, 1) {
		_, want := d.ISOWeek()
		require.Equal(t, want, WeekNumber(d), "weekNumber(%s)", FormatDate(d))
	}
}

func TestWeeksInRange_SingleDay(t *testing.T) {
	// A Wednesday-only range still yields its full Monday-aligned week.
	weeks := WeeksInRange(date(2024, 3, 6), date(2024, 3, 6))
	require.Len(t, weeks, 1)
	require.Equal(t, "2024-03-04", weeks[0].Monday())
	require.Equal(t, "2024-03-10", weeks[0].Sunday())
	require.Len(t, weeks[0], 7)
}

func TestWeeksInRange_ContiguousMondayAligned(t *testing.T) {
	weeks := WeeksInRange(date(2024, 3, 6), date(2024, 4, 5))
	require.Len(t, weeks, 5)
	for i, week := range weeks {
		require.Len(t, week, 7)
		monday, err := ParseDate(week.Monday())
		require.NoError(t, err)
		require.Equal(t, time.Monday, monday.Weekday())
		for d := 1; d < 7; d++ {
			require.Equal(t, FormatDate(monday.AddDate(0, 0, d)), week[d])
		}
		if i > 0 {
			prevMonday, _ := ParseDate(weeks[i-1].Monday())
			require.Equal(t, prevMonday.AddDate(0, 0, 7), monday)
		}
	}
}

func TestNextNWeeks(t *testing.T) {
	weeks := NextNWeeks(4, date(2024, 3, 7)) // a Thursday
	require.Len(t, weeks, 4)
	require.Equal(t, "2024-03-04", weeks[0].Monday())
	require.Equal(t, "2024-03-25", weeks[3].Monday())

	require.Nil(t, NextNWeeks(0, date(2024, 3, 7)))
}
