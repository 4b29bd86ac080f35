package service

import (
	"context"
	"strings"

	"shiftplanner/internal/domain"

	"go.uber.org/zap"
)

// SaveEmployee creates or updates an employee. A zero id means create; new
// ids are max(existing)+1. Team changes regenerate the schedule, preserving
// locked weeks.
func (p *Planner) SaveEmployee(ctx context.Context, emp domain.Employee) (int, error) {
	if strings.TrimSpace(emp.Name) == "" {
		return 0, &domain.ValidationError{Reason: "employee name is empty"}
	}
	switch emp.Team {
	case domain.TeamA, domain.TeamB, domain.TeamC:
	default:
		return 0, &domain.ValidationError{Reason: "unknown team: " + string(emp.Team)}
	}
	st, err := p.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	if emp.Skills == nil {
		emp.Skills = []int{}
	}
	if emp.AbsentDates == nil {
		emp.AbsentDates = []string{}
	}

	if emp.ID == 0 {
		emp.ID = nextID(len(st.Employees), func(i int) int { return st.Employees[i].ID })
		st.Employees = append(st.Employees, emp)
	} else {
		existing := st.EmployeeByID(emp.ID)
		if existing == nil {
			st.Employees = append(st.Employees, emp)
		} else {
			*existing = emp
		}
	}

	p.regenerate(st)
	if err := p.repo.Save(ctx, st); err != nil {
		return 0, err
	}
	p.logger.Info("employee saved", zap.Int("id", emp.ID), zap.String("team", string(emp.Team)))
	return emp.ID, nil
}

// DeleteEmployee removes an employee from the roster and regenerates the
// schedule. Ids left behind in old version snapshots are tolerated: lookups
// return none and readers skip them.
func (p *Planner) DeleteEmployee(ctx context.Context, id int) error {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return err
	}
	kept := st.Employees[:0]
	found := false
	for _, e := range st.Employees {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return &domain.ValidationError{Reason: "employee not found"}
	}
	st.Employees = kept

	p.regenerate(st)
	if err := p.repo.Save(ctx, st); err != nil {
		return err
	}
	p.logger.Info("employee deleted", zap.Int("id", id))
	return nil
}

// SaveSkill creates or updates a skill. A zero id means create.
func (p *Planner) SaveSkill(ctx context.Context, skill domain.Skill) (int, error) {
	if strings.TrimSpace(skill.Name) == "" {
		return 0, &domain.ValidationError{Reason: "skill name is empty"}
	}
	st, err := p.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	if skill.ID == 0 {
		skill.ID = nextID(len(st.Skills), func(i int) int { return st.Skills[i].ID })
		st.Skills = append(st.Skills, skill)
	} else if existing := st.SkillByID(skill.ID); existing != nil {
		*existing = skill
	} else {
		st.Skills = append(st.Skills, skill)
	}

	if err := p.repo.Save(ctx, st); err != nil {
		return 0, err
	}
	p.logger.Info("skill saved", zap.Int("id", skill.ID), zap.String("name", skill.Name))
	return skill.ID, nil
}

// DeleteSkill removes a skill and cascades the removal from every
// employee's skill set.
func (p *Planner) DeleteSkill(ctx context.Context, id int) error {
	st, err := p.repo.Load(ctx)
	if err != nil {
		return err
	}
	kept := st.Skills[:0]
	found := false
	for _, s := range st.Skills {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return &domain.ValidationError{Reason: "skill not found"}
	}
	st.Skills = kept

	for i := range st.Employees {
		skills := st.Employees[i].Skills[:0]
		for _, sid := range st.Employees[i].Skills {
			if sid != id {
				skills = append(skills, sid)
			}
		}
		st.Employees[i].Skills = skills
	}

	if err := p.repo.Save(ctx, st); err != nil {
		return err
	}
	p.logger.Info("skill deleted", zap.Int("id", id))
	return nil
}

func nextID(n int, idAt func(int) int) int {
	max := 0
	for i := 0; i < n; i++ {
		if id := idAt(i); id > max {
			max = id
		}
	}
	return max + 1
}
