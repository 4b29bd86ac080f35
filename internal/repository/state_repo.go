package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shiftplanner/internal/domain"
	"shiftplanner/internal/store"
)

// StateKey 固定的持久化键（沿用原 localStorage 键名）
const StateKey = "shiftPlannerData"

// StateRepository 整体读、整体写的应用状态仓库
type StateRepository interface {
	// Load returns the persisted state, or domain.ErrStateNotFound.
	Load(ctx context.Context) (*domain.AppState, error)
	// Save persists the whole state in one write.
	Save(ctx context.Context, state *domain.AppState) error
}

// KVStateRepository 基于 KV blob 的实现
type KVStateRepository struct {
	kv store.KV
}

func NewKVStateRepository(kv store.KV) *KVStateRepository {
	return &KVStateRepository{kv: kv}
}

func (r *KVStateRepository) Load(ctx context.Context) (*domain.AppState, error) {
	raw, err := r.kv.Get(ctx, StateKey)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	var state domain.AppState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	// Older blobs may miss weekVersions/lockedWeeks/skills.
	state.Normalize(time.Now().UTC())
	return &state, nil
}

func (r *KVStateRepository) Save(ctx context.Context, state *domain.AppState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := r.kv.Set(ctx, StateKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
