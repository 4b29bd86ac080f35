package service

import (
	"context"
	"strings"

	"shiftplanner/internal/domain"

	"go.uber.org/zap"
)

// AssignResult 班次指派的结果反馈
type AssignResult struct {
	Assigned int
	// Borrowed lists the assigned employees that come from outside the
	// slot's default team. Cross-team borrowing is allowed, only flagged
	// so the caller can ask for confirmation.
	Borrowed   []int
	TeamCounts map[domain.Team]int
}

// AssignEmployees overwrites the employee list of one shift slot.
//
// Rejected whole (nothing written) when the week is locked or when any
// selected employee is marked absent on that day's date. The updated week is
// written back into the active version snapshot to keep the live schedule
// and the version consistent.
func (p *Planner) AssignEmployees(ctx context.Context, week int, day string, shift domain.ShiftType, employeeIDs []int) (*AssignResult, error) {
	if domain.DayIndex(day) < 0 {
		return nil, &domain.ValidationError{Reason: "unknown day: " + day}
	}
	switch shift {
	case domain.ShiftAM, domain.ShiftPM, domain.ShiftNight:
	default:
		return nil, &domain.ValidationError{Reason: "unknown shift type: " + string(shift)}
	}

	st, err := p.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkWeek(st, week); err != nil {
		return nil, err
	}
	if st.IsLocked(week) {
		return nil, &domain.LockedWeekError{Week: week}
	}
	ws, ok := st.Schedule[week]
	if !ok {
		return nil, &domain.ValidationError{Reason: "week has no schedule"}
	}

	date := st.DateFor(week, day)
	var absent []string
	for _, id := range employeeIDs {
		// Unknown ids resolve to none and are skipped, not rejected.
		if e := st.EmployeeByID(id); e != nil && e.IsAbsent(date) {
			absent = append(absent, e.Name)
		}
	}
	if len(absent) > 0 {
		return nil, &domain.ValidationError{
			Reason: "absent employees selected: " + strings.Join(absent, ", "),
		}
	}

	ds := ws[day]
	slot := ds.Slot(shift)
	slot.Employees = append([]int{}, employeeIDs...)
	ws[day] = ds

	syncActiveSnapshot(st.WeekVersions[week], ws)

	if err := p.repo.Save(ctx, st); err != nil {
		return nil, err
	}

	res := &AssignResult{
		Assigned:   len(employeeIDs),
		TeamCounts: map[domain.Team]int{},
	}
	for _, id := range employeeIDs {
		e := st.EmployeeByID(id)
		if e == nil {
			continue
		}
		res.TeamCounts[e.Team]++
		if e.Team != slot.Team {
			res.Borrowed = append(res.Borrowed, id)
		}
	}
	p.logger.Info("shift assignment saved",
		zap.Int("week", week),
		zap.String("day", day),
		zap.String("shift", string(shift)),
		zap.Int("assigned", res.Assigned),
		zap.Int("borrowed", len(res.Borrowed)),
	)
	return res, nil
}
