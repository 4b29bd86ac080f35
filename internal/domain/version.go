package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InitialVersionName 每周首个版本的名称
const InitialVersionName = "Initial Version"

// Version 一周排班的命名快照。每周同一时刻恰有一个版本 IsActive。
type Version struct {
	VersionID string       `json:"versionId,omitempty"` // UUID，导入旧数据时可缺失
	Name      string       `json:"name"`
	Date      time.Time    `json:"date"` // 创建时间
	IsActive  bool         `json:"isActive"`
	Schedule  WeekSchedule `json:"schedule"` // 深拷贝快照
}

// Clone 深拷贝
func (v Version) Clone() Version {
	out := v
	out.Schedule = v.Schedule.Clone()
	return out
}

// VersionSet 一周的全部版本，键形如 "v1"、"v2"
type VersionSet map[string]Version

// Clone 深拷贝
func (s VersionSet) Clone() VersionSet {
	if s == nil {
		return nil
	}
	out := make(VersionSet, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}
	return out
}

// NextKey returns "v<N+1>" where N is the highest existing numeric suffix.
// Keys are never reused, so history stays append-only.
func (s VersionSet) NextKey() string {
	max := 0
	for k := range s {
		if !strings.HasPrefix(k, "v") {
			continue
		}
		if n, err := strconv.Atoi(k[1:]); err == nil && n > max {
			max = n
		}
	}
	return "v" + strconv.Itoa(max+1)
}

// ActiveKey returns the key of the active version, or "".
func (s VersionSet) ActiveKey() string {
	for k, v := range s {
		if v.IsActive {
			return k
		}
	}
	return ""
}

// Activate flips IsActive off on every version and on for the given key.
func (s VersionSet) Activate(key string) {
	for k, v := range s {
		v.IsActive = k == key
		s[k] = v
	}
}

// SortedKeys returns version keys ordered by numeric suffix.
func (s VersionSet) SortedKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(keys[i], "v"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(keys[j], "v"))
		return ni < nj
	})
	return keys
}

// NewVersion builds a version with a fresh UUID and a deep snapshot of the schedule.
func NewVersion(name string, at time.Time, active bool, schedule WeekSchedule) Version {
	return Version{
		VersionID: uuid.NewString(),
		Name:      name,
		Date:      at,
		IsActive:  active,
		Schedule:  schedule.Clone(),
	}
}
