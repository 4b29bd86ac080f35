package store

import (
	"context"
	"errors"
	"sync"
)

// ErrMiss key 不存在
var ErrMiss = errors.New("key miss")

// KV 同步键值 blob 存储（整个应用状态保存在一个固定键下）
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// MemoryKV keeps blobs in-process; used when no backing store is configured
// and by tests.
type MemoryKV struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}
