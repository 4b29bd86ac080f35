package service

import (
	"bytes"
	"testing"

	"shiftplanner/internal/domain"
	"shiftplanner/internal/i18n"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook_ThreeSheets(t *testing.T) {
	p, ctx := newTestPlanner(t)
	st, err := p.State(ctx)
	require.NoError(t, err)

	tr := i18n.NewTranslator(nil)
	data, filename, err := ExportWorkbook(st, 0, tr, testNow)
	require.NoError(t, err)
	require.Equal(t, "ShiftPlanner_Export_2024-03-04.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Weekly Summary")
	require.Contains(t, sheets, "Detailed Schedule")
	require.Contains(t, sheets, "Data Records")
	require.NotContains(t, sheets, "Sheet1")

	// 2024-03-04 starts ISO week 10.
	title, err := f.GetCellValue("Weekly Summary", "A1")
	require.NoError(t, err)
	require.Equal(t, "Week 10: 04/03/2024 - 10/03/2024", title)

	banner, err := f.GetCellValue("Weekly Summary", "A2")
	require.NoError(t, err)
	require.Contains(t, banner, "Status: Unlocked")
	require.Contains(t, banner, "Version: "+domain.InitialVersionName)

	// Monday's AM cell lists the full team-A roster.
	cell, err := f.GetCellValue("Weekly Summary", "B6")
	require.NoError(t, err)
	require.Equal(t, "John Doe, Jane Smith", cell)
}

func TestExportWorkbook_FlagsLockedWeek(t *testing.T) {
	p, ctx := newTestPlanner(t)
	require.NoError(t, p.SetLocked(ctx, 0, true))
	st, err := p.State(ctx)
	require.NoError(t, err)

	data, _, err := ExportWorkbook(st, 0, i18n.NewTranslator(nil), testNow)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	banner, err := f.GetCellValue("Weekly Summary", "A2")
	require.NoError(t, err)
	require.Contains(t, banner, "Status: Locked")
}

func TestExportWorkbook_WeekWithoutDates(t *testing.T) {
	p, ctx := newTestPlanner(t)
	st, err := p.State(ctx)
	require.NoError(t, err)

	var vErr *domain.ValidationError
	_, _, err = ExportWorkbook(st, 99, i18n.NewTranslator(nil), testNow)
	require.ErrorAs(t, err, &vErr)
}
