package domain

// ShiftType 班次类型（每天三班）
type ShiftType string

const (
	ShiftAM    ShiftType = "AM"
	ShiftPM    ShiftType = "PM"
	ShiftNight ShiftType = "Night"
)

// ShiftTypes 所有班次（固定顺序）
var ShiftTypes = []ShiftType{ShiftAM, ShiftPM, ShiftNight}

// DaysOfWeek 周一到周日的固定顺序，WeekSchedule 以此为键
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayIndex returns the position of a day name within the week, or -1.
func DayIndex(day string) int {
	for i, d := range DaysOfWeek {
		if d == day {
			return i
		}
	}
	return -1
}

// ShiftSlot 单个班次：默认班组 + 排入的员工（有序）
type ShiftSlot struct {
	Team      Team  `json:"team"`
	Employees []int `json:"employees"`
}

// Clone 深拷贝
func (s ShiftSlot) Clone() ShiftSlot {
	out := ShiftSlot{Team: s.Team}
	if s.Employees != nil {
		out.Employees = make([]int, len(s.Employees))
		copy(out.Employees, s.Employees)
	}
	return out
}

// DaySchedule 单日排班（三个班次）
type DaySchedule struct {
	Date  string    `json:"date"` // YYYY-MM-DD
	AM    ShiftSlot `json:"AM"`
	PM    ShiftSlot `json:"PM"`
	Night ShiftSlot `json:"Night"`
}

// Slot returns a pointer to the slot for the given shift type, or nil.
func (d *DaySchedule) Slot(shift ShiftType) *ShiftSlot {
	switch shift {
	case ShiftAM:
		return &d.AM
	case ShiftPM:
		return &d.PM
	case ShiftNight:
		return &d.Night
	}
	return nil
}

// Clone 深拷贝
func (d DaySchedule) Clone() DaySchedule {
	return DaySchedule{
		Date:  d.Date,
		AM:    d.AM.Clone(),
		PM:    d.PM.Clone(),
		Night: d.Night.Clone(),
	}
}

// WeekSchedule 一周排班，键为 DaysOfWeek 中的日名（7 项）
type WeekSchedule map[string]DaySchedule

// Clone 深拷贝
func (w WeekSchedule) Clone() WeekSchedule {
	if w == nil {
		return nil
	}
	out := make(WeekSchedule, len(w))
	for day, ds := range w {
		out[day] = ds.Clone()
	}
	return out
}

// WeekDates 一周的 7 个日期（YYYY-MM-DD），周一在前
type WeekDates []string

// Monday returns the first date of the week, or "" for a malformed entry.
func (w WeekDates) Monday() string {
	if len(w) == 0 {
		return ""
	}
	return w[0]
}

// Sunday returns the last date of the week, or "" for a malformed entry.
func (w WeekDates) Sunday() string {
	if len(w) < 7 {
		return ""
	}
	return w[6]
}

// Clone 深拷贝
func (w WeekDates) Clone() WeekDates {
	if w == nil {
		return nil
	}
	out := make(WeekDates, len(w))
	copy(out, w)
	return out
}

// Overlaps reports whether two inclusive date intervals intersect.
// ISO date strings compare correctly as plain strings.
func (w WeekDates) Overlaps(other WeekDates) bool {
	if len(w) < 7 || len(other) < 7 {
		return false
	}
	return w.Monday() <= other.Sunday() && w.Sunday() >= other.Monday()
}
