package domain

import (
	"encoding/json"
	"time"
)

// AppState 聚合根：整体读入、整体写出的单一持久化对象
type AppState struct {
	Employees    []Employee         `json:"employees"`
	Skills       []Skill            `json:"skills"`
	Schedule     map[int]WeekSchedule `json:"schedule"`
	WeekVersions map[int]VersionSet `json:"weekVersions"`
	LockedWeeks  map[int]bool       `json:"lockedWeeks"`
	CurrentWeek  int                `json:"currentWeek"`
	WeekDates    []WeekDates        `json:"weekDates"`
}

// Clone 显式深拷贝（替代序列化往返的拷贝习惯）
func (s *AppState) Clone() *AppState {
	out := &AppState{
		CurrentWeek:  s.CurrentWeek,
		Employees:    make([]Employee, len(s.Employees)),
		Skills:       make([]Skill, len(s.Skills)),
		Schedule:     make(map[int]WeekSchedule, len(s.Schedule)),
		WeekVersions: make(map[int]VersionSet, len(s.WeekVersions)),
		LockedWeeks:  make(map[int]bool, len(s.LockedWeeks)),
		WeekDates:    make([]WeekDates, len(s.WeekDates)),
	}
	for i, e := range s.Employees {
		ce := e
		ce.Skills = append([]int(nil), e.Skills...)
		ce.AbsentDates = append([]string(nil), e.AbsentDates...)
		out.Employees[i] = ce
	}
	copy(out.Skills, s.Skills)
	for w, ws := range s.Schedule {
		out.Schedule[w] = ws.Clone()
	}
	for w, vs := range s.WeekVersions {
		out.WeekVersions[w] = vs.Clone()
	}
	for w, locked := range s.LockedWeeks {
		out.LockedWeeks[w] = locked
	}
	for i, wd := range s.WeekDates {
		out.WeekDates[i] = wd.Clone()
	}
	return out
}

// EmployeeByID returns the employee with the given id, or nil.
// Stale ids (e.g. left in old version snapshots after a delete) resolve to nil
// and are skipped by callers.
func (s *AppState) EmployeeByID(id int) *Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}

// SkillByID returns the skill with the given id, or nil.
func (s *AppState) SkillByID(id int) *Skill {
	for i := range s.Skills {
		if s.Skills[i].ID == id {
			return &s.Skills[i]
		}
	}
	return nil
}

// IsLocked reports the lock flag for a week; absent entries mean unlocked.
func (s *AppState) IsLocked(week int) bool {
	return s.LockedWeeks[week]
}

// Versions returns the version set for a week (possibly nil).
func (s *AppState) Versions(week int) VersionSet {
	return s.WeekVersions[week]
}

// ActiveVersion returns the key and a copy of the active version for a week.
// ok is false when the week has no versions yet.
func (s *AppState) ActiveVersion(week int) (string, Version, bool) {
	vs := s.WeekVersions[week]
	key := vs.ActiveKey()
	if key == "" {
		return "", Version{}, false
	}
	return key, vs[key], true
}

// DateFor returns the calendar date for a week index and day name, or "".
func (s *AppState) DateFor(week int, day string) string {
	idx := DayIndex(day)
	if idx < 0 || week < 0 || week >= len(s.WeekDates) || len(s.WeekDates[week]) <= idx {
		return ""
	}
	return s.WeekDates[week][idx]
}

// Normalize fills in pieces missing from older persisted blobs: empty maps,
// per-employee skill lists, and a v1 snapshot for any scheduled week that has
// no version entry yet.
func (s *AppState) Normalize(now time.Time) {
	if s.Schedule == nil {
		s.Schedule = map[int]WeekSchedule{}
	}
	if s.WeekVersions == nil {
		s.WeekVersions = map[int]VersionSet{}
	}
	if s.LockedWeeks == nil {
		s.LockedWeeks = map[int]bool{}
	}
	if s.Skills == nil {
		s.Skills = []Skill{}
	}
	for i := range s.Employees {
		if s.Employees[i].Skills == nil {
			s.Employees[i].Skills = []int{}
		}
		if s.Employees[i].AbsentDates == nil {
			s.Employees[i].AbsentDates = []string{}
		}
	}
	for week, ws := range s.Schedule {
		if len(s.WeekVersions[week]) == 0 {
			s.WeekVersions[week] = VersionSet{
				"v1": NewVersion(InitialVersionName, now, true, ws),
			}
		}
	}
}

// importShape 仅用于导入校验的顶层形状
type importShape struct {
	Employees    *json.RawMessage `json:"employees"`
	Skills       *json.RawMessage `json:"skills"`
	Schedule     *json.RawMessage `json:"schedule"`
	WeekVersions *json.RawMessage `json:"weekVersions"`
	LockedWeeks  *json.RawMessage `json:"lockedWeeks"`
	WeekDates    *json.RawMessage `json:"weekDates"`
}

// ValidateImport checks that a candidate blob carries the six required
// top-level keys and that employees/skills are sequences. It never mutates
// anything; decoding into AppState is the caller's second step.
func ValidateImport(raw []byte) error {
	var shape importShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return &ImportFormatError{Reason: "not a JSON object: " + err.Error()}
	}
	required := map[string]*json.RawMessage{
		"employees":    shape.Employees,
		"skills":       shape.Skills,
		"schedule":     shape.Schedule,
		"weekVersions": shape.WeekVersions,
		"lockedWeeks":  shape.LockedWeeks,
		"weekDates":    shape.WeekDates,
	}
	for _, key := range []string{"employees", "skills", "schedule", "weekVersions", "lockedWeeks", "weekDates"} {
		if required[key] == nil {
			return &ImportFormatError{Reason: "missing required key: " + key}
		}
	}
	var seq []json.RawMessage
	if err := json.Unmarshal(*shape.Employees, &seq); err != nil {
		return &ImportFormatError{Reason: "employees is not a sequence"}
	}
	if err := json.Unmarshal(*shape.Skills, &seq); err != nil {
		return &ImportFormatError{Reason: "skills is not a sequence"}
	}
	return nil
}
