// Package calendar 周历工具：周一对齐、ISO 周号、日期范围到周的分解。
// 纯函数，无错误路径。
package calendar

import (
	"time"

	"shiftplanner/internal/domain"
)

// DateLayout 领域层日期字符串格式
const DateLayout = "2006-01-02"

// DisplayLayout 面向用户的日期格式（dd/mm/yyyy）
const DisplayLayout = "02/01/2006"

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDisplay formats a date as dd/mm/yyyy.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// MondayOf returns the Monday of the ISO week containing t.
// Sunday belongs to the end of the week, not the start.
func MondayOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch wd := t.Weekday(); wd {
	case time.Sunday:
		return t.AddDate(0, 0, -6)
	default:
		return t.AddDate(0, 0, -(int(wd) - 1))
	}
}

// WeekNumber returns the ISO-8601 week number: shift to the Thursday of the
// week (Sunday counts as day 7), then count 7-day blocks since Jan 1 of the
// Thursday's year. Week 1 is the week containing the year's first Thursday.
func WeekNumber(t time.Time) int {
	isoDay := int(t.Weekday())
	if isoDay == 0 {
		isoDay = 7
	}
	thursday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, 4-isoDay)
	// YearDay of the shifted date is days-since-Jan-1 plus one.
	return (thursday.YearDay() + 6) / 7
}

// WeeksInRange decomposes an inclusive date range into contiguous
// Monday-aligned 7-day blocks. The start is aligned down to its Monday, so
// at least one week comes back whenever start <= end after alignment.
func WeeksInRange(start, end time.Time) []domain.WeekDates {
	var weeks []domain.WeekDates
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for monday := MondayOf(start); !monday.After(end); monday = monday.AddDate(0, 0, 7) {
		week := make(domain.WeekDates, 7)
		for day := 0; day < 7; day++ {
			week[day] = FormatDate(monday.AddDate(0, 0, day))
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// NextNWeeks returns n contiguous Monday-aligned weeks starting from the
// Monday of the week containing from.
func NextNWeeks(n int, from time.Time) []domain.WeekDates {
	if n <= 0 {
		return nil
	}
	monday := MondayOf(from)
	return WeeksInRange(monday, monday.AddDate(0, 0, n*7-1))
}
