package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testWeek() WeekSchedule {
	return WeekSchedule{
		"Monday": {
			Date:  "2024-03-04",
			AM:    ShiftSlot{Team: TeamA, Employees: []int{1, 2}},
			PM:    ShiftSlot{Team: TeamB, Employees: []int{3}},
			Night: ShiftSlot{Team: TeamC, Employees: []int{4}},
		},
	}
}

func TestVersionSet_NextKey(t *testing.T) {
	require.Equal(t, "v1", VersionSet{}.NextKey())
	require.Equal(t, "v1", VersionSet(nil).NextKey())

	vs := VersionSet{"v1": {}, "v3": {}}
	// Numbers are never reused: the gap at v2 stays a gap.
	require.Equal(t, "v4", vs.NextKey())
}

func TestVersionSet_Activate(t *testing.T) {
	vs := VersionSet{
		"v1": {Name: "one", IsActive: true},
		"v2": {Name: "two"},
	}
	vs.Activate("v2")
	require.False(t, vs["v1"].IsActive)
	require.True(t, vs["v2"].IsActive)
	require.Equal(t, "v2", vs.ActiveKey())

	vs.Activate("")
	require.Equal(t, "", vs.ActiveKey())
}

func TestVersionSet_SortedKeys(t *testing.T) {
	vs := VersionSet{"v10": {}, "v2": {}, "v1": {}}
	require.Equal(t, []string{"v1", "v2", "v10"}, vs.SortedKeys())
}

func TestAppState_CloneIsDeep(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	st := &AppState{
		Employees: []Employee{{ID: 1, Name: "John", Team: TeamA, Skills: []int{1}, AbsentDates: []string{"2024-03-05"}}},
		Skills:    []Skill{{ID: 1, Name: "First Aid"}},
		Schedule:  map[int]WeekSchedule{0: testWeek()},
		WeekVersions: map[int]VersionSet{
			0: {"v1": NewVersion(InitialVersionName, now, true, testWeek())},
		},
		LockedWeeks: map[int]bool{0: false},
		WeekDates:   []WeekDates{{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"}},
	}

	clone := st.Clone()
	require.Equal(t, st, clone)

	clone.Employees[0].Skills[0] = 99
	clone.Employees[0].AbsentDates[0] = "2030-01-01"
	monday := clone.Schedule[0]["Monday"]
	monday.AM.Employees[0] = 99
	clone.Schedule[0]["Monday"] = monday
	clone.WeekDates[0][0] = "1999-01-01"
	v := clone.WeekVersions[0]["v1"]
	v.Schedule["Monday"].AM.Employees[0] = 99
	clone.LockedWeeks[0] = true

	require.Equal(t, 1, st.Employees[0].Skills[0])
	require.Equal(t, "2024-03-05", st.Employees[0].AbsentDates[0])
	require.Equal(t, 1, st.Schedule[0]["Monday"].AM.Employees[0])
	require.Equal(t, "2024-03-04", st.WeekDates[0][0])
	require.Equal(t, 1, st.WeekVersions[0]["v1"].Schedule["Monday"].AM.Employees[0])
	require.False(t, st.LockedWeeks[0])
}

func TestAppState_EmployeeByID_StaleIDReturnsNil(t *testing.T) {
	st := &AppState{Employees: []Employee{{ID: 1}}}
	require.NotNil(t, st.EmployeeByID(1))
	require.Nil(t, st.EmployeeByID(42))
}

func TestNormalize_FillsMissingPieces(t *testing.T) {
	st := &AppState{
		Employees: []Employee{{ID: 1, Name: "John", Team: TeamA}},
		Schedule:  map[int]WeekSchedule{0: testWeek()},
	}
	st.Normalize(time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC))

	require.NotNil(t, st.Employees[0].Skills)
	require.NotNil(t, st.LockedWeeks)
	require.NotNil(t, st.Skills)
	v1, ok := st.WeekVersions[0]["v1"]
	require.True(t, ok)
	require.True(t, v1.IsActive)
	require.Equal(t, InitialVersionName, v1.Name)
	require.Equal(t, st.Schedule[0], v1.Schedule)
}

func TestValidateImport(t *testing.T) {
	valid := []byte(`{
		"employees": [], "skills": [], "schedule": {},
		"weekVersions": {}, "lockedWeeks": {}, "weekDates": [], "currentWeek": 0
	}`)
	require.NoError(t, ValidateImport(valid))

	var importErr *ImportFormatError

	missing := []byte(`{"employees": [], "skills": [], "schedule": {}, "weekVersions": {}, "lockedWeeks": {}}`)
	err := ValidateImport(missing)
	require.ErrorAs(t, err, &importErr)

	notSeq := []byte(`{
		"employees": {"oops": true}, "skills": [], "schedule": {},
		"weekVersions": {}, "lockedWeeks": {}, "weekDates": []
	}`)
	err = ValidateImport(notSeq)
	require.ErrorAs(t, err, &importErr)

	err = ValidateImport([]byte(`not json`))
	require.ErrorAs(t, err, &importErr)
}

func TestWeekDates_Overlaps(t *testing.T) {
	w1 := WeekDates{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"}
	w2 := WeekDates{"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14", "2024-03-15", "2024-03-16", "2024-03-17"}
	require.True(t, w1.Overlaps(w1))
	require.False(t, w1.Overlaps(w2))
	require.False(t, w2.Overlaps(w1))
}
