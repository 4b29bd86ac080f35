package service

import (
	"context"
	"strings"
	"time"

	"shiftplanner/internal/domain"

	"go.uber.org/zap"
)

// CreateVersion snapshots the live schedule of a week into a new named
// version and activates it. The key is "v<max+1>"; numbers are never reused.
func (p *Planner) CreateVersion(ctx context.Context, week int, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &domain.ValidationError{Reason: "version name is empty"}
	}
	st, err := p.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	if err := checkWeek(st, week); err != nil {
		return "", err
	}
	if st.IsLocked(week) {
		return "", &domain.LockedWeekError{Week: week}
	}

	key := appendVersion(st, week, name, p.now())
	if err := p.repo.Save(ctx, st); err != nil {
		return "", err
	}
	p.logger.Info("version created",
		zap.Int("week", week),
		zap.String("key", key),
		zap.String("name", name),
	)
	return key, nil
}

// appendVersion deactivates every version of the week and inserts a new
// active one holding a deep snapshot of the live schedule.
func appendVersion(st *domain.AppState, week int, name string, at time.Time) string {
	vs := st.WeekVersions[week]
	if vs == nil {
		vs = domain.VersionSet{}
		st.WeekVersions[week] = vs
	}
	key := vs.NextKey()
	vs.Activate("")
	vs[key] = domain.NewVersion(name, at, true, st.Schedule[week])
	return key
}

// ActivateVersion makes the given version active and replaces the live
// schedule with a deep copy of its snapshot.
func (p *Planner) ActivateVersion(ctx context.Context, week int, key string) error {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := checkWeek(st, week); err != nil {
		return err
	}
	if st.IsLocked(week) {
		return &domain.LockedWeekError{Week: week}
	}
	vs := st.WeekVersions[week]
	v, ok := vs[key]
	if !ok {
		return &domain.VersionNotFoundError{Week: week, Key: key}
	}

	vs.Activate(key)
	st.Schedule[week] = v.Schedule.Clone()
	if err := p.repo.Save(ctx, st); err != nil {
		return err
	}
	p.logger.Info("version activated", zap.Int("week", week), zap.String("key", key))
	return nil
}

// ActiveVersion returns the key and version currently active for a week.
// A week that was never generated has no versions; ok is false then.
func (p *Planner) ActiveVersion(ctx context.Context, week int) (string, domain.Version, bool, error) {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return "", domain.Version{}, false, err
	}
	key, v, ok := st.ActiveVersion(week)
	return key, v, ok, nil
}

// AllVersions returns the full version set of a week for display.
func (p *Planner) AllVersions(ctx context.Context, week int) (domain.VersionSet, error) {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return st.Versions(week).Clone(), nil
}

// SetLocked flips the per-week lock flag. No validation: locking always
// succeeds and persists.
func (p *Planner) SetLocked(ctx context.Context, week int, locked bool) error {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return err
	}
	st.LockedWeeks[week] = locked
	if err := p.repo.Save(ctx, st); err != nil {
		return err
	}
	p.logger.Info("week lock changed", zap.Int("week", week), zap.Bool("locked", locked))
	return nil
}
