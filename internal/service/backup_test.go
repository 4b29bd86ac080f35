package service

import (
	"testing"

	"shiftplanner/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestBackup_RoundTrip(t *testing.T) {
	p, ctx := newTestPlanner(t)
	require.NoError(t, p.SetLocked(ctx, 2, true))
	_, err := p.CreateVersion(ctx, 0, "before export")
	require.NoError(t, err)

	st, err := p.State(ctx)
	require.NoError(t, err)

	res, err := ExportBackup(st, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, res.BackupID)
	require.Equal(t, "ShiftPlanner_Backup_2024-03-04.json", res.Filename)

	// Wipe the stored state by importing into a fresh planner.
	p2, ctx2 := newTestPlanner(t)
	require.NoError(t, p2.ImportBackup(ctx2, res.Data))

	restored, err := p2.State(ctx2)
	require.NoError(t, err)
	require.Equal(t, st, restored)
	require.True(t, restored.IsLocked(2))
	_, v, ok := restored.ActiveVersion(0)
	require.True(t, ok)
	require.Equal(t, "before export", v.Name)
}

func TestImportBackup_MalformedChangesNothing(t *testing.T) {
	p, ctx := newTestPlanner(t)
	before, err := p.State(ctx)
	require.NoError(t, err)

	var importErr *domain.ImportFormatError

	err = p.ImportBackup(ctx, []byte(`{"employees": []}`))
	require.ErrorAs(t, err, &importErr)

	err = p.ImportBackup(ctx, []byte(`garbage`))
	require.ErrorAs(t, err, &importErr)

	after, err := p.State(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
