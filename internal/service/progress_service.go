package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"skillpath/internal/errors"
	"skillpath/internal/model"
	"skillpath/internal/repository"
)

// ProgressSummary condenses a progress record against its roadmap.
type ProgressSummary struct {
	RoadmapID      uint   `json:"roadmapId"`
	CompletedCount int    `json:"completedCount"`
	TotalSteps     int    `json:"totalSteps"`
	Percentage     string `json:"percentage"`
}

// ProgressService tracks completed roadmap steps per user.
type ProgressService interface {
	// GetProgress returns nil when the user has not recorded anything for the roadmap.
	GetProgress(ctx context.Context, userID, roadmapID uint) (*model.Progress, error)
	// UpdateProgress replaces the completed step set wholesale.
	UpdateProgress(ctx context.Context, userID, roadmapID uint, completedSteps []string) (*model.Progress, error)
	Summary(ctx context.Context, userID, roadmapID uint) (*ProgressSummary, error)
}

type progressService struct {
	store repository.Store
	now   func() time.Time
	// Per-user locks keep lastUpdated monotonic across concurrent updates.
	userMutexes sync.Map
}

// NewProgressService creates a new progress service.
func NewProgressService(store repository.Store) ProgressService {
	return &progressService{store: store, now: time.Now}
}

func (s *progressService) getMutex(userID uint) *sync.Mutex {
	value, _ := s.userMutexes.LoadOrStore(userID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

func (s *progressService) GetProgress(ctx context.Context, userID, roadmapID uint) (*model.Progress, error) {
	p, err := s.store.GetProgress(ctx, userID, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

func (s *progressService) UpdateProgress(ctx context.Context, userID, roadmapID uint, completedSteps []string) (*model.Progress, error) {
	mu := s.getMutex(userID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.store.GetProgress(ctx, userID, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	record := &model.Progress{
		UserID:         userID,
		RoadmapID:      roadmapID,
		CompletedSteps: dedupe(completedSteps),
		LastUpdated:    s.now().UTC(),
	}
	if existing != nil {
		record.ID = existing.ID
		if !record.LastUpdated.After(existing.LastUpdated) {
			record.LastUpdated = existing.LastUpdated.Add(time.Millisecond)
		}
	}

	stored, err := s.store.UpdateProgress(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	return stored, nil
}

// Summary reports how much of a roadmap is done. Only ids naming real steps count.
func (s *progressService) Summary(ctx context.Context, userID, roadmapID uint) (*ProgressSummary, error) {
	roadmap, err := s.store.GetRoadmapByID(ctx, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("get roadmap %d: %w", roadmapID, err)
	}
	if roadmap == nil {
		return nil, errors.ErrRoadmapNotFound
	}

	p, err := s.GetProgress(ctx, userID, roadmapID)
	if err != nil {
		return nil, err
	}

	completed := 0
	if p != nil {
		for _, id := range p.CompletedSteps {
			if roadmap.HasStep(id) {
				completed++
			}
		}
	}

	total := len(roadmap.Steps)
	pct := decimal.Zero
	if total > 0 {
		pct = decimal.NewFromInt(int64(completed)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total)))
	}

	return &ProgressSummary{
		RoadmapID:      roadmapID,
		CompletedCount: completed,
		TotalSteps:     total,
		Percentage:     pct.StringFixed(2),
	}, nil
}

// dedupe drops repeated ids, keeping first occurrences in order. It never returns nil.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
