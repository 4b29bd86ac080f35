package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shiftplanner/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BackupResult JSON 备份导出结果
type BackupResult struct {
	BackupID string
	Filename string
	Data     []byte
}

// ExportBackup serializes the whole state as a pretty-printed JSON blob.
func ExportBackup(st *domain.AppState, now time.Time) (*BackupResult, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return &BackupResult{
		BackupID: uuid.NewString(),
		Filename: fmt.Sprintf("ShiftPlanner_Backup_%s.json", now.Format("2006-01-02")),
		Data:     data,
	}, nil
}

// ImportBackup validates a candidate blob and, on success, replaces the
// whole persisted state with it. A malformed candidate changes nothing.
func (p *Planner) ImportBackup(ctx context.Context, raw []byte) error {
	if err := domain.ValidateImport(raw); err != nil {
		return err
	}
	var st domain.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return &domain.ImportFormatError{Reason: "undecodable state: " + err.Error()}
	}
	st.Normalize(p.now())

	if err := p.repo.Save(ctx, &st); err != nil {
		return err
	}
	p.logger.Info("backup imported",
		zap.Int("employees", len(st.Employees)),
		zap.Int("weeks", len(st.WeekDates)),
	)
	return nil
}
