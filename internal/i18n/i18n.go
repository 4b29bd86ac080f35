// Package i18n 界面/导出文案的翻译包加载与查找。
//
// 翻译包是远端的 lang/<code>.json 平面键值文件；加载失败时回退到内置英文。
package i18n

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Bundle 平面键值翻译表
type Bundle map[string]string

// English 内置英文文案（回退链的末端）
func English() Bundle {
	return Bundle{
		"sheet.weeklySummary":    "Weekly Summary",
		"sheet.detailedSchedule": "Detailed Schedule",
		"sheet.dataRecords":      "Data Records",
		"export.weeklySchedule":  "Weekly Schedule",
		"export.detailedView":    "Detailed Schedule View",
		"export.skillCoverage":   "Weekly Skill Coverage Summary",
		"export.exceptions":      "Weekly Exceptions",
		"export.status":          "Status",
		"export.version":         "Version",
		"export.locked":          "Locked",
		"export.unlocked":        "Unlocked",
		"export.day":             "Day",
		"export.date":            "Date",
		"export.shift":           "Shift",
		"export.team":            "Team",
		"export.employee":        "Employee",
		"export.employees":       "Employees",
		"export.skill":           "Skill",
		"export.skills":          "Skills",
		"export.count":           "Count",
		"export.absent":          "ABSENT",
		"export.description":     "Description",
		"export.absentDates":     "Absent Dates",
		"export.none":            "None",
	}
}

// Translator 带回退链的查找：请求语言 → 英文 → 键本身
type Translator struct {
	lang     Bundle
	fallback Bundle
}

func NewTranslator(lang Bundle) *Translator {
	return &Translator{lang: lang, fallback: English()}
}

// T resolves a key through the fallback chain.
func (t *Translator) T(key string) string {
	if t != nil {
		if v, ok := t.lang[key]; ok && v != "" {
			return v
		}
		if v, ok := t.fallback[key]; ok && v != "" {
			return v
		}
	}
	if v, ok := English()[key]; ok {
		return v
	}
	return key
}

// Fetcher 从远端加载翻译包
type Fetcher struct {
	client *resty.Client
	logger *zap.Logger
}

func NewFetcher(baseURL string, logger *zap.Logger) *Fetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")
	return &Fetcher{client: client, logger: logger}
}

// Load fetches lang/<code>.json. The caller decides the fallback; a fetch
// failure is not fatal to any core operation.
func (f *Fetcher) Load(ctx context.Context, code string) (Bundle, error) {
	var bundle Bundle
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&bundle).
		Get(fmt.Sprintf("/lang/%s.json", code))
	if err != nil {
		f.logger.Warn("failed to fetch language bundle", zap.String("lang", code), zap.Error(err))
		return nil, err
	}
	if resp.IsError() {
		f.logger.Warn("language bundle request rejected",
			zap.String("lang", code),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("language bundle %s: status %d", code, resp.StatusCode())
	}
	return bundle, nil
}
