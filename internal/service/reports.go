package service

import (
	"sort"

	"shiftplanner/internal/domain"
)

// Read-only accessors over AppState. The export collaborator builds its
// sheets from these; nothing here mutates or persists.

// ShiftRow 某个班次中一名员工的展示行
type ShiftRow struct {
	EmployeeID int
	Name       string
	Team       domain.Team
	Absent     bool // marked absent on the slot's date; listed, not removed
	Borrowed   bool // from outside the slot's default team
	Skills     []string
}

// ShiftRows returns the display rows for one slot. Stale employee ids are
// skipped.
func ShiftRows(st *domain.AppState, week int, day string, shift domain.ShiftType) []ShiftRow {
	ws, ok := st.Schedule[week]
	if !ok {
		return nil
	}
	ds, ok := ws[day]
	if !ok {
		return nil
	}
	slot := ds.Slot(shift)
	if slot == nil {
		return nil
	}
	date := st.DateFor(week, day)

	rows := make([]ShiftRow, 0, len(slot.Employees))
	for _, id := range slot.Employees {
		e := st.EmployeeByID(id)
		if e == nil {
			continue
		}
		row := ShiftRow{
			EmployeeID: e.ID,
			Name:       e.Name,
			Team:       e.Team,
			Absent:     e.IsAbsent(date),
			Borrowed:   e.Team != slot.Team,
		}
		for _, sid := range e.Skills {
			if s := st.SkillByID(sid); s != nil {
				row.Skills = append(row.Skills, s.Name)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// AvailableEmployees returns the ids of a team's members who are not absent
// on the given date.
func AvailableEmployees(st *domain.AppState, team domain.Team, date string) []int {
	ids := []int{}
	for _, e := range st.Employees {
		if e.Team == team && !e.IsAbsent(date) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// ShiftSkills returns the distinct skill ids covered by the given employees
// on a date, skipping absentees.
func ShiftSkills(st *domain.AppState, employeeIDs []int, date string) []int {
	seen := map[int]bool{}
	var out []int
	for _, id := range employeeIDs {
		e := st.EmployeeByID(id)
		if e == nil || e.IsAbsent(date) {
			continue
		}
		for _, sid := range e.Skills {
			if !seen[sid] {
				seen[sid] = true
				out = append(out, sid)
			}
		}
	}
	sort.Ints(out)
	return out
}

// SkillCount 技能覆盖计数
type SkillCount struct {
	ID    int
	Name  string
	Count int
}

// DailySkillSummary counts skills across all three shifts of one day,
// skipping absentees, ordered by count descending.
func DailySkillSummary(st *domain.AppState, week int, day string) []SkillCount {
	ws, ok := st.Schedule[week]
	if !ok {
		return nil
	}
	ds, ok := ws[day]
	if !ok {
		return nil
	}
	date := st.DateFor(week, day)
	counts := map[int]int{}
	for _, shift := range domain.ShiftTypes {
		countSlotSkills(st, ds.Slot(shift), date, counts)
	}
	return sortedSkillCounts(st, counts)
}

// WeeklySkillSummary counts skills per shift type across the whole week,
// skipping absentees.
func WeeklySkillSummary(st *domain.AppState, week int) map[domain.ShiftType][]SkillCount {
	out := map[domain.ShiftType][]SkillCount{}
	ws, ok := st.Schedule[week]
	if !ok {
		return out
	}
	for _, shift := range domain.ShiftTypes {
		counts := map[int]int{}
		for dayIndex, day := range domain.DaysOfWeek {
			ds, ok := ws[day]
			if !ok {
				continue
			}
			var date string
			if week >= 0 && week < len(st.WeekDates) && dayIndex < len(st.WeekDates[week]) {
				date = st.WeekDates[week][dayIndex]
			}
			countSlotSkills(st, ds.Slot(shift), date, counts)
		}
		out[shift] = sortedSkillCounts(st, counts)
	}
	return out
}

func countSlotSkills(st *domain.AppState, slot *domain.ShiftSlot, date string, counts map[int]int) {
	if slot == nil {
		return
	}
	for _, id := range slot.Employees {
		e := st.EmployeeByID(id)
		if e == nil || e.IsAbsent(date) {
			continue
		}
		for _, sid := range e.Skills {
			counts[sid]++
		}
	}
}

func sortedSkillCounts(st *domain.AppState, counts map[int]int) []SkillCount {
	out := make([]SkillCount, 0, len(counts))
	for sid, n := range counts {
		name := "Unknown"
		if s := st.SkillByID(sid); s != nil {
			name = s.Name
		}
		out = append(out, SkillCount{ID: sid, Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Absence 一周内的单条缺勤记录
type Absence struct {
	Date string
	Day  string
	Name string
	Team domain.Team
}

// WeekAbsences lists every absence falling inside a week, in date order.
func WeekAbsences(st *domain.AppState, week int) []Absence {
	if week < 0 || week >= len(st.WeekDates) {
		return nil
	}
	var out []Absence
	for dayIndex, date := range st.WeekDates[week] {
		if dayIndex >= len(domain.DaysOfWeek) {
			break
		}
		for _, e := range st.Employees {
			if e.IsAbsent(date) {
				out = append(out, Absence{
					Date: date,
					Day:  domain.DaysOfWeek[dayIndex],
					Name: e.Name,
					Team: e.Team,
				})
			}
		}
	}
	return out
}
