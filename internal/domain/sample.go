package domain

// SampleState 首次启动时的示例数据（排班与版本由上层生成）
func SampleState(weekDates []WeekDates) *AppState {
	return &AppState{
		Employees: []Employee{
			{ID: 1, Name: "John Doe", Team: TeamA, Skills: []int{1, 3}, AbsentDates: []string{}},
			{ID: 2, Name: "Jane Smith", Team: TeamA, Skills: []int{1, 4}, AbsentDates: []string{}},
			{ID: 3, Name: "Bob Johnson", Team: TeamB, Skills: []int{2}, AbsentDates: []string{}},
			{ID: 4, Name: "Alice Brown", Team: TeamB, Skills: []int{2, 3}, AbsentDates: []string{}},
			{ID: 5, Name: "Charlie Davis", Team: TeamC, Skills: []int{4}, AbsentDates: []string{}},
		},
		Skills: []Skill{
			{ID: 1, Name: "First Aid", Description: "Certified in basic first aid"},
			{ID: 2, Name: "Forklift", Description: "Licensed to operate forklifts"},
			{ID: 3, Name: "Team Lead", Description: "Can lead a team"},
			{ID: 4, Name: "Technical Support", Description: "Can provide technical assistance"},
		},
		Schedule:     map[int]WeekSchedule{},
		WeekVersions: map[int]VersionSet{},
		LockedWeeks:  map[int]bool{},
		CurrentWeek:  0,
		WeekDates:    weekDates,
	}
}
