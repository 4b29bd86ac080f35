package domain

// Team 班组标识（A/B 轮换早晚班，C 固定夜班）
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
	TeamC Team = "C"
)

// Teams 所有班组（固定顺序）
var Teams = []Team{TeamA, TeamB, TeamC}

// Employee 员工领域模型
type Employee struct {
	ID          int      `json:"id"`          // 唯一且稳定
	Name        string   `json:"name"`        // 姓名
	Team        Team     `json:"team"`        // 默认班组
	Skills      []int    `json:"skills"`      // 技能 ID 集合
	AbsentDates []string `json:"absentDates"` // 缺勤日期（YYYY-MM-DD）
}

// IsAbsent reports whether the employee is marked absent on the given date.
func (e *Employee) IsAbsent(date string) bool {
	for _, d := range e.AbsentDates {
		if d == date {
			return true
		}
	}
	return false
}

// HasSkill reports whether the employee carries the given skill id.
func (e *Employee) HasSkill(skillID int) bool {
	for _, id := range e.Skills {
		if id == skillID {
			return true
		}
	}
	return false
}

// Skill 技能领域模型
type Skill struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
