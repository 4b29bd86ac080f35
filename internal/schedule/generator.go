// Package schedule 确定性排班生成。
//
// 规则：周索引为偶数时 A 队早班 / B 队晚班，奇数时反转；C 队固定夜班。
// 轮换依据的是周索引的奇偶，不是日历周号。
package schedule

import "shiftplanner/internal/domain"

// TeamsFor returns the AM/PM/Night team assignment for a week index.
func TeamsFor(weekIndex int) (am, pm, night domain.Team) {
	if weekIndex%2 == 0 {
		return domain.TeamA, domain.TeamB, domain.TeamC
	}
	return domain.TeamB, domain.TeamA, domain.TeamC
}

// Generate builds the full schedule for every supplied week.
//
// Each slot lists every employee of the slot's team, absent or not: absence
// is a display/assignment concern layered on top, never filtered out here.
// Missing teams simply produce empty slot lists.
func Generate(employees []domain.Employee, weekDates []domain.WeekDates) map[int]domain.WeekSchedule {
	out := make(map[int]domain.WeekSchedule, len(weekDates))
	for weekIndex, week := range weekDates {
		am, pm, night := TeamsFor(weekIndex)
		ws := make(domain.WeekSchedule, len(domain.DaysOfWeek))
		for dayIndex, day := range domain.DaysOfWeek {
			if dayIndex >= len(week) {
				break
			}
			ws[day] = domain.DaySchedule{
				Date:  week[dayIndex],
				AM:    domain.ShiftSlot{Team: am, Employees: employeesOf(employees, am)},
				PM:    domain.ShiftSlot{Team: pm, Employees: employeesOf(employees, pm)},
				Night: domain.ShiftSlot{Team: night, Employees: employeesOf(employees, night)},
			}
		}
		out[weekIndex] = ws
	}
	return out
}

func employeesOf(employees []domain.Employee, team domain.Team) []int {
	ids := []int{}
	for _, e := range employees {
		if e.Team == team {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
