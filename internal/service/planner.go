package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiftplanner/internal/calendar"
	"shiftplanner/internal/domain"
	"shiftplanner/internal/repository"
	"shiftplanner/internal/schedule"

	"go.uber.org/zap"
)

// Planner 排班核心服务。每个变更操作遵循
// 整体读入 → 计算 → 整体写出；失败路径不落盘。
type Planner struct {
	repo   repository.StateRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPlanner 创建排班服务
func NewPlanner(repo repository.StateRepository, logger *zap.Logger) *Planner {
	return &Planner{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// State returns the persisted state for read-only use.
func (p *Planner) State(ctx context.Context) (*domain.AppState, error) {
	return p.repo.Load(ctx)
}

// Bootstrap loads the persisted state, seeding sample data with four
// generated weeks on first start.
func (p *Planner) Bootstrap(ctx context.Context) (*domain.AppState, error) {
	st, err := p.repo.Load(ctx)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, domain.ErrStateNotFound) {
		return nil, err
	}

	now := p.now()
	st = domain.SampleState(calendar.NextNWeeks(4, now))
	st.Schedule = schedule.Generate(st.Employees, st.WeekDates)
	for week, ws := range st.Schedule {
		st.WeekVersions[week] = domain.VersionSet{
			"v1": domain.NewVersion(domain.InitialVersionName, now, true, ws),
		}
		st.LockedWeeks[week] = false
	}
	if err := p.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	p.logger.Info("seeded sample state",
		zap.Int("employees", len(st.Employees)),
		zap.Int("weeks", len(st.WeekDates)),
	)
	return st, nil
}

// SetCurrentWeek moves the week cursor.
func (p *Planner) SetCurrentWeek(ctx context.Context, week int) error {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return err
	}
	if week < 0 || week >= len(st.WeekDates) {
		return &domain.ValidationError{Reason: fmt.Sprintf("week %d out of range", week)}
	}
	st.CurrentWeek = week
	return p.repo.Save(ctx, st)
}

// checkWeek validates a week index against the current sequence.
func checkWeek(st *domain.AppState, week int) error {
	if week < 0 || week >= len(st.WeekDates) {
		return &domain.ValidationError{Reason: fmt.Sprintf("week %d out of range", week)}
	}
	return nil
}

// regenerate rebuilds the schedule for every week after a roster change.
// Locked weeks are restored from the pre-edit schedule instead of being
// overwritten; unlocked weeks get their active version snapshot synced so the
// live schedule keeps mirroring it.
func (p *Planner) regenerate(st *domain.AppState) {
	now := p.now()
	prev := st.Schedule
	st.Schedule = schedule.Generate(st.Employees, st.WeekDates)
	for week, ws := range st.Schedule {
		if st.IsLocked(week) {
			if old, ok := prev[week]; ok {
				st.Schedule[week] = old.Clone()
			}
			continue
		}
		vs := st.WeekVersions[week]
		if len(vs) == 0 {
			st.WeekVersions[week] = domain.VersionSet{
				"v1": domain.NewVersion(domain.InitialVersionName, now, true, ws),
			}
			st.LockedWeeks[week] = false
			continue
		}
		syncActiveSnapshot(vs, ws)
	}
}

// syncActiveSnapshot writes the live week schedule back into the active
// version, keeping the two consistent.
func syncActiveSnapshot(vs domain.VersionSet, ws domain.WeekSchedule) {
	if key := vs.ActiveKey(); key != "" {
		v := vs[key]
		v.Schedule = ws.Clone()
		vs[key] = v
	}
}
