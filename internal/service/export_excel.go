package service

import (
	"fmt"
	"strings"
	"time"

	"shiftplanner/internal/calendar"
	"shiftplanner/internal/domain"
	"shiftplanner/internal/i18n"

	"github.com/xuri/excelize/v2"
)

// ExportWorkbook 生成单周的三页 Excel 工作簿：
// 周汇总（日×班次表格 + 技能覆盖 + 缺勤）、明细排班（带技能标注）、数据记录。
// 样式只求可读，精细外观不是核心关注点。
func ExportWorkbook(st *domain.AppState, week int, tr *i18n.Translator, now time.Time) ([]byte, string, error) {
	if week < 0 || week >= len(st.WeekDates) || len(st.WeekDates[week]) < 7 {
		return nil, "", &domain.ValidationError{Reason: fmt.Sprintf("week %d has no dates", week)}
	}

	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteToBuffer needs the file open.

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	monday, _ := calendar.ParseDate(st.WeekDates[week].Monday())
	sunday, _ := calendar.ParseDate(st.WeekDates[week].Sunday())
	title := fmt.Sprintf("Week %d: %s - %s",
		calendar.WeekNumber(monday), calendar.FormatDisplay(monday), calendar.FormatDisplay(sunday))

	status := tr.T("export.unlocked")
	if st.IsLocked(week) {
		status = tr.T("export.locked")
	}
	versionName := "Default"
	if _, v, ok := st.ActiveVersion(week); ok {
		versionName = v.Name
	}
	banner := fmt.Sprintf("%s: %s | %s: %s", tr.T("export.status"), status, tr.T("export.version"), versionName)

	if err := buildWeeklySummarySheet(f, st, week, tr, headerStyle, title, banner); err != nil {
		f.Close()
		return nil, "", err
	}
	if err := buildDetailedScheduleSheet(f, st, week, tr, headerStyle, title, banner); err != nil {
		f.Close()
		return nil, "", err
	}
	if err := buildDataRecordsSheet(f, st, tr, headerStyle); err != nil {
		f.Close()
		return nil, "", err
	}

	f.DeleteSheet("Sheet1")
	idx, err := f.GetSheetIndex(tr.T("sheet.weeklySummary"))
	if err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	f.Close()

	filename := fmt.Sprintf("ShiftPlanner_Export_%s.xlsx", now.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func buildWeeklySummarySheet(f *excelize.File, st *domain.AppState, week int, tr *i18n.Translator, headerStyle int, title, banner string) error {
	sheet := tr.T("sheet.weeklySummary")
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	for col, width := range []float64{14, 30, 30, 30} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheet, name, name, width)
	}

	row := 1
	if err := writeRow(f, sheet, row, []any{title}, 0); err != nil {
		return err
	}
	row++
	if err := writeRow(f, sheet, row, []any{banner}, 0); err != nil {
		return err
	}
	row += 2

	if err := writeRow(f, sheet, row, []any{tr.T("export.weeklySchedule")}, 0); err != nil {
		return err
	}
	row++

	am, pm, night := scheduleTeams(st, week)
	header := []any{
		tr.T("export.day") + " / " + tr.T("export.date"),
		fmt.Sprintf("AM (%s %s)", tr.T("export.team"), am),
		fmt.Sprintf("PM (%s %s)", tr.T("export.team"), pm),
		fmt.Sprintf("Night (%s %s)", tr.T("export.team"), night),
	}
	if err := writeRow(f, sheet, row, header, headerStyle); err != nil {
		return err
	}
	row++

	for dayIndex, day := range domain.DaysOfWeek {
		cells := []any{fmt.Sprintf("%s %s", day, st.WeekDates[week][dayIndex])}
		for _, shift := range domain.ShiftTypes {
			cells = append(cells, shiftCell(st, week, day, shift, tr))
		}
		if err := writeRow(f, sheet, row, cells, 0); err != nil {
			return err
		}
		row++
	}
	row++

	if err := writeRow(f, sheet, row, []any{tr.T("export.skillCoverage")}, 0); err != nil {
		return err
	}
	row++
	if err := writeRow(f, sheet, row, []any{tr.T("export.shift"), tr.T("export.skill"), tr.T("export.count")}, headerStyle); err != nil {
		return err
	}
	row++
	summary := WeeklySkillSummary(st, week)
	for _, shift := range domain.ShiftTypes {
		if len(summary[shift]) == 0 {
			if err := writeRow(f, sheet, row, []any{string(shift), tr.T("export.none"), 0}, 0); err != nil {
				return err
			}
			row++
			continue
		}
		for _, sc := range summary[shift] {
			if err := writeRow(f, sheet, row, []any{string(shift), sc.Name, sc.Count}, 0); err != nil {
				return err
			}
			row++
		}
	}
	row++

	if err := writeRow(f, sheet, row, []any{tr.T("export.exceptions")}, 0); err != nil {
		return err
	}
	row++
	if err := writeRow(f, sheet, row, []any{tr.T("export.date"), tr.T("export.day"), tr.T("export.employee"), tr.T("export.team")}, headerStyle); err != nil {
		return err
	}
	row++
	absences := WeekAbsences(st, week)
	if len(absences) == 0 {
		return writeRow(f, sheet, row, []any{tr.T("export.none")}, 0)
	}
	for _, a := range absences {
		if err := writeRow(f, sheet, row, []any{a.Date, a.Day, a.Name, "Team " + string(a.Team)}, 0); err != nil {
			return err
		}
		row++
	}
	return nil
}

func buildDetailedScheduleSheet(f *excelize.File, st *domain.AppState, week int, tr *i18n.Translator, headerStyle int, title, banner string) error {
	sheet := tr.T("sheet.detailedSchedule")
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	for col, width := range []float64{14, 12, 10, 10, 25, 40} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheet, name, name, width)
	}

	row := 1
	if err := writeRow(f, sheet, row, []any{title}, 0); err != nil {
		return err
	}
	row++
	if err := writeRow(f, sheet, row, []any{banner}, 0); err != nil {
		return err
	}
	row += 2

	if err := writeRow(f, sheet, row, []any{tr.T("export.detailedView")}, 0); err != nil {
		return err
	}
	row++
	header := []any{
		tr.T("export.day"), tr.T("export.date"), tr.T("export.shift"),
		tr.T("export.team"), tr.T("export.employee"), tr.T("export.skills"),
	}
	if err := writeRow(f, sheet, row, header, headerStyle); err != nil {
		return err
	}
	row++

	for dayIndex, day := range domain.DaysOfWeek {
		date := st.WeekDates[week][dayIndex]
		for _, shift := range domain.ShiftTypes {
			rows := ShiftRows(st, week, day, shift)
			if len(rows) == 0 {
				if err := writeRow(f, sheet, row, []any{day, date, string(shift), "", tr.T("export.none"), ""}, 0); err != nil {
					return err
				}
				row++
				continue
			}
			for _, r := range rows {
				name := r.Name
				if r.Absent {
					name += " (" + tr.T("export.absent") + ")"
				}
				if r.Borrowed {
					name += fmt.Sprintf(" (%s %s)", tr.T("export.team"), r.Team)
				}
				skills := strings.Join(r.Skills, ", ")
				if skills == "" {
					skills = tr.T("export.none")
				}
				cells := []any{day, date, string(shift), "Team " + string(r.Team), name, skills}
				if err := writeRow(f, sheet, row, cells, 0); err != nil {
					return err
				}
				row++
			}
		}
	}
	return nil
}

func buildDataRecordsSheet(f *excelize.File, st *domain.AppState, tr *i18n.Translator, headerStyle int) error {
	sheet := tr.T("sheet.dataRecords")
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	for col, width := range []float64{10, 25, 12, 40, 40} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		_ = f.SetColWidth(sheet, name, name, width)
	}

	row := 1
	header := []any{"ID", tr.T("export.employee"), tr.T("export.team"), tr.T("export.skills"), tr.T("export.absentDates")}
	if err := writeRow(f, sheet, row, header, headerStyle); err != nil {
		return err
	}
	row++
	for _, e := range st.Employees {
		var names []string
		for _, sid := range e.Skills {
			if s := st.SkillByID(sid); s != nil {
				names = append(names, s.Name)
			}
		}
		skills := strings.Join(names, ", ")
		if skills == "" {
			skills = tr.T("export.none")
		}
		absent := strings.Join(e.AbsentDates, ", ")
		if absent == "" {
			absent = tr.T("export.none")
		}
		cells := []any{e.ID, e.Name, "Team " + string(e.Team), skills, absent}
		if err := writeRow(f, sheet, row, cells, 0); err != nil {
			return err
		}
		row++
	}
	row++

	if err := writeRow(f, sheet, row, []any{"ID", tr.T("export.skill"), tr.T("export.description")}, headerStyle); err != nil {
		return err
	}
	row++
	for _, s := range st.Skills {
		if err := writeRow(f, sheet, row, []any{s.ID, s.Name, s.Description}, 0); err != nil {
			return err
		}
		row++
	}
	return nil
}

// shiftCell renders a slot's employee list for the summary grid, flagging
// absentees and borrowed team members instead of removing them.
func shiftCell(st *domain.AppState, week int, day string, shift domain.ShiftType, tr *i18n.Translator) string {
	rows := ShiftRows(st, week, day, shift)
	if len(rows) == 0 {
		return tr.T("export.none")
	}
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		name := r.Name
		if r.Absent {
			name += " (" + tr.T("export.absent") + ")"
		}
		if r.Borrowed {
			name += fmt.Sprintf(" (%s %s)", tr.T("export.team"), r.Team)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

// scheduleTeams reads the default team of each slot from the first day that
// has one. The team is a typed field on the slot, never inferred from text.
func scheduleTeams(st *domain.AppState, week int) (am, pm, night domain.Team) {
	ws := st.Schedule[week]
	for _, day := range domain.DaysOfWeek {
		if ds, ok := ws[day]; ok {
			return ds.AM.Team, ds.PM.Team, ds.Night.Team
		}
	}
	return domain.TeamA, domain.TeamB, domain.TeamC
}

func writeRow(f *excelize.File, sheet string, row int, values []any, styleID int) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
		if styleID != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("failed to set style on %s: %w", cell, err)
			}
		}
	}
	return nil
}
