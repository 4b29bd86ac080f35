package service

import (
	"context"
	"sort"

	"shiftplanner/internal/calendar"
	"shiftplanner/internal/domain"
	"shiftplanner/internal/schedule"

	"go.uber.org/zap"
)

// PlanResult 范围重排的结果汇总
type PlanResult struct {
	Weeks           int      // weeks in the final sequence
	Regenerated     int      // weeks rebuilt by the generator
	PreservedLocked int      // locked weeks restored untouched
	ReplanLabels    []string // replan version names created for existing weeks
}

// GeneratePlan regenerates the plan over an arbitrary date range.
//
// Week identity is the Monday date, not the position in the sequence: version
// history and lock flags follow the Monday across the replacement, and locked
// weeks outside the new range are re-inserted so a lock always survives a
// replan. The whole operation computes first and persists once; any failure
// leaves the stored state untouched.
func (p *Planner) GeneratePlan(ctx context.Context, start, end string, createVersions bool) (*PlanResult, error) {
	startT, err := calendar.ParseDate(start)
	if err != nil {
		return nil, &domain.ValidationError{Reason: "malformed start date: " + start}
	}
	endT, err := calendar.ParseDate(end)
	if err != nil {
		return nil, &domain.ValidationError{Reason: "malformed end date: " + end}
	}
	if endT.Before(startT) {
		return nil, &domain.ValidationError{Reason: "end date is before start date"}
	}

	newWeeks := calendar.WeeksInRange(startT, endT)
	if len(newWeeks) == 0 {
		return nil, &domain.ValidationError{Reason: "date range yields no weeks"}
	}

	st, err := p.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Rollback source for locked weeks and carry-over source for history.
	prev := st.Clone()

	oldByMonday := make(map[string]int, len(prev.WeekDates))
	for j, wd := range prev.WeekDates {
		if len(wd) == 7 {
			oldByMonday[wd.Monday()] = j
		}
	}

	// Overlapping unlocked weeks get a replan label derived from the new
	// week's start date; locked overlaps are skipped here and restored later.
	replanLabels := map[string]string{} // old Monday -> label
	for _, nw := range newWeeks {
		for j, ow := range prev.WeekDates {
			if len(ow) < 7 || !nw.Overlaps(ow) {
				continue
			}
			if prev.LockedWeeks[j] {
				continue
			}
			nwStart, _ := calendar.ParseDate(nw.Monday())
			replanLabels[ow.Monday()] = "Replan " + calendar.FormatDisplay(nwStart)
			break
		}
	}

	// Final sequence: the new range plus any locked week it does not cover,
	// in chronological order.
	newMondays := make(map[string]bool, len(newWeeks))
	for _, nw := range newWeeks {
		newMondays[nw.Monday()] = true
	}
	final := make([]domain.WeekDates, 0, len(newWeeks))
	for _, nw := range newWeeks {
		final = append(final, nw.Clone())
	}
	for j, ow := range prev.WeekDates {
		if prev.LockedWeeks[j] && len(ow) == 7 && !newMondays[ow.Monday()] {
			final = append(final, ow.Clone())
		}
	}
	sort.Slice(final, func(i, j int) bool { return final[i].Monday() < final[j].Monday() })

	st.WeekDates = final
	st.Schedule = schedule.Generate(st.Employees, final)

	// Carry versions and lock flags across by Monday date.
	st.WeekVersions = map[int]domain.VersionSet{}
	st.LockedWeeks = map[int]bool{}
	for i, wd := range final {
		if j, ok := oldByMonday[wd.Monday()]; ok {
			if vs := prev.WeekVersions[j]; vs != nil {
				st.WeekVersions[i] = vs.Clone()
			}
			st.LockedWeeks[i] = prev.LockedWeeks[j]
		}
	}

	now := p.now()
	res := &PlanResult{Weeks: len(final)}
	for i, wd := range final {
		monday := wd.Monday()
		if st.LockedWeeks[i] {
			// Restore from the snapshot, overriding regeneration.
			j := oldByMonday[monday]
			st.WeekDates[i] = prev.WeekDates[j].Clone()
			st.Schedule[i] = prev.Schedule[j].Clone()
			res.PreservedLocked++
			continue
		}
		res.Regenerated++

		vs := st.WeekVersions[i]
		if len(vs) == 0 {
			st.WeekVersions[i] = domain.VersionSet{
				"v1": domain.NewVersion(domain.InitialVersionName, now, true, st.Schedule[i]),
			}
			st.LockedWeeks[i] = false
			continue
		}
		if label, ok := replanLabels[monday]; ok && createVersions {
			key := vs.NextKey()
			vs.Activate("")
			vs[key] = domain.NewVersion(label, now, true, st.Schedule[i])
			res.ReplanLabels = append(res.ReplanLabels, label)
			continue
		}
		syncActiveSnapshot(vs, st.Schedule[i])
	}

	if st.CurrentWeek >= len(final) || st.CurrentWeek < 0 {
		st.CurrentWeek = 0
	}

	if err := p.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	p.logger.Info("plan generated",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("weeks", res.Weeks),
		zap.Int("regenerated", res.Regenerated),
		zap.Int("preserved_locked", res.PreservedLocked),
		zap.Int("replanned", len(res.ReplanLabels)),
	)
	return res, nil
}
