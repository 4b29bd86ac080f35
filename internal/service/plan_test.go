package service

import (
	"testing"

	"shiftplanner/internal/domain"

	"github.com/stretchr/testify/require"
)

// The seeded plan covers Mondays 2024-03-04, 03-11, 03-18 and 03-25.

func TestGeneratePlan_LockedWeekSurvivesByteForByte(t *testing.T) {
	p, ctx := newTestPlanner(t)

	// Hand-edit week 0 so we can see the replan throw the edit away, then
	// lock week 1 so the replan must preserve it.
	_, err := p.AssignEmployees(ctx, 0, "Wednesday", domain.ShiftPM, []int{1})
	require.NoError(t, err)
	require.NoError(t, p.SetLocked(ctx, 1, true))

	before, err := p.State(ctx)
	require.NoError(t, err)

	res, err := p.GeneratePlan(ctx, "2024-03-06", "2024-04-05", true)
	require.NoError(t, err)
	require.Equal(t, 5, res.Weeks)
	require.Equal(t, 1, res.PreservedLocked)
	require.Equal(t, 4, res.Regenerated)

	st, err := p.State(ctx)
	require.NoError(t, err)
	require.Len(t, st.WeekDates, 5)
	require.Equal(t, "2024-03-04", st.WeekDates[0].Monday())
	require.Equal(t, "2024-04-01", st.WeekDates[4].Monday())

	// Locked week 1: dates, schedule, lock flag and history carried untouched.
	require.Equal(t, before.WeekDates[1], st.WeekDates[1])
	require.Equal(t, before.Schedule[1], st.Schedule[1])
	require.Equal(t, before.WeekVersions[1], st.WeekVersions[1])
	require.True(t, st.IsLocked(1))

	// Week 0 was regenerated: the manual edit is gone and the fresh schedule
	// went into a new active replan version.
	require.NotEqual(t, []int{1}, st.Schedule[0]["Wednesday"].PM.Employees)
	key, v, ok := st.ActiveVersion(0)
	require.True(t, ok)
	require.Equal(t, "v2", key)
	require.Equal(t, "Replan 04/03/2024", v.Name)
	require.Equal(t, st.Schedule[0], v.Schedule)
	// The old version survives, inactive.
	require.False(t, st.WeekVersions[0]["v1"].IsActive)

	require.Contains(t, res.ReplanLabels, "Replan 04/03/2024")
	require.Contains(t, res.ReplanLabels, "Replan 18/03/2024")
	require.Contains(t, res.ReplanLabels, "Replan 25/03/2024")

	// The brand-new week starts its own history.
	v1, ok := st.WeekVersions[4]["v1"]
	require.True(t, ok)
	require.True(t, v1.IsActive)
	require.Equal(t, domain.InitialVersionName, v1.Name)

	for week := 0; week < 5; week++ {
		requireVersionInvariant(t, st, week)
	}
}

func TestGeneratePlan_LockedWeekOutsideRangeReinserted(t *testing.T) {
	p, ctx := newTestPlanner(t)
	require.NoError(t, p.SetLocked(ctx, 3, true))

	before, err := p.State(ctx)
	require.NoError(t, err)

	// A range entirely after the locked week (Monday 2024-03-25).
	res, err := p.GeneratePlan(ctx, "2024-04-08", "2024-04-21", true)
	require.NoError(t, err)
	require.Equal(t, 3, res.Weeks)
	require.Equal(t, 1, res.PreservedLocked)
	require.Equal(t, 2, res.Regenerated)
	require.Empty(t, res.ReplanLabels)

	st, err := p.State(ctx)
	require.NoError(t, err)
	// Chronological order puts the re-inserted locked week first.
	require.Equal(t, "2024-03-25", st.WeekDates[0].Monday())
	require.Equal(t, "2024-04-08", st.WeekDates[1].Monday())
	require.Equal(t, "2024-04-15", st.WeekDates[2].Monday())

	require.True(t, st.IsLocked(0))
	require.Equal(t, before.Schedule[3], st.Schedule[0])
	require.Equal(t, before.WeekVersions[3], st.WeekVersions[0])

	// The unlocked seeded weeks fell out of the plan entirely.
	require.Len(t, st.Schedule, 3)
}

func TestGeneratePlan_NoVersionsWithoutCreateFlag(t *testing.T) {
	p, ctx := newTestPlanner(t)

	res, err := p.GeneratePlan(ctx, "2024-03-04", "2024-03-17", false)
	require.NoError(t, err)
	require.Empty(t, res.ReplanLabels)

	st, err := p.State(ctx)
	require.NoError(t, err)
	for week := 0; week < 2; week++ {
		// Still a single v1 per week, synced to the regenerated schedule.
		require.Len(t, st.WeekVersions[week], 1)
		requireVersionInvariant(t, st, week)
	}
}

func TestGeneratePlan_ValidationLeavesStateUntouched(t *testing.T) {
	p, ctx := newTestPlanner(t)
	before, err := p.State(ctx)
	require.NoError(t, err)

	var vErr *domain.ValidationError
	_, err = p.GeneratePlan(ctx, "2024-04-05", "2024-03-06", true)
	require.ErrorAs(t, err, &vErr)
	_, err = p.GeneratePlan(ctx, "06/03/2024", "2024-04-05", true)
	require.ErrorAs(t, err, &vErr)
	_, err = p.GeneratePlan(ctx, "2024-03-06", "not-a-date", true)
	require.ErrorAs(t, err, &vErr)

	after, err := p.State(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestGeneratePlan_ClampsCurrentWeek(t *testing.T) {
	p, ctx := newTestPlanner(t)
	require.NoError(t, p.SetCurrentWeek(ctx, 3))

	_, err := p.GeneratePlan(ctx, "2024-03-04", "2024-03-10", true)
	require.NoError(t, err)

	st, err := p.State(ctx)
	require.NoError(t, err)
	require.Len(t, st.WeekDates, 1)
	require.Equal(t, 0, st.CurrentWeek)
}
