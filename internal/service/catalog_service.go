package service

import (
	"context"
	"fmt"

	"skillpath/internal/errors"
	"skillpath/internal/model"
	"skillpath/internal/repository"
)

// CatalogService exposes the read-only skill catalog.
type CatalogService interface {
	ListSkills(ctx context.Context) ([]model.Skill, error)
	GetRoadmap(ctx context.Context, skillID uint) (*model.Roadmap, error)
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListSkills(ctx context.Context) ([]model.Skill, error) {
	skills, err := s.store.GetSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// GetRoadmap returns the roadmap of a skill, or ErrRoadmapNotFound.
func (s *catalogService) GetRoadmap(ctx context.Context, skillID uint) (*model.Roadmap, error) {
	roadmap, err := s.store.GetRoadmap(ctx, skillID)
	if err != nil {
		return nil, fmt.Errorf("get roadmap for skill %d: %w", skillID, err)
	}
	if roadmap == nil {
		return nil, errors.ErrRoadmapNotFound
	}
	return roadmap, nil
}
