package repository

import (
	"context"
	"errors"

	"skillpath/internal/model"
)

// ErrDuplicateUsername is returned by backends whose schema enforces unique usernames
// when CreateUser collides with an existing row.
var ErrDuplicateUsername = errors.New("duplicate username")

// Store defines the persistence operations for users, the catalog and progress.
//
// Lookups report absence as a nil record with a nil error; an error always means the
// backend itself failed. No method checks for duplicates or dangling references: those
// checks belong to the callers. A SQL schema may still refuse a duplicate username, which
// surfaces as ErrDuplicateUsername.
type Store interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	// GetUserByUsername matches the username exactly (case-sensitive).
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// CreateUser assigns the next user id and stores the candidate.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	// GetSkills returns every skill in seed order.
	GetSkills(ctx context.Context) ([]model.Skill, error)
	// GetRoadmap returns the first roadmap registered for skillID.
	GetRoadmap(ctx context.Context, skillID uint) (*model.Roadmap, error)
	GetRoadmapByID(ctx context.Context, id uint) (*model.Roadmap, error)

	GetProgress(ctx context.Context, userID, roadmapID uint) (*model.Progress, error)
	// UpdateProgress upserts by the record's id. A zero id resolves to the record already
	// held for the same (UserID, RoadmapID), or to a newly assigned id.
	UpdateProgress(ctx context.Context, progress *model.Progress) (*model.Progress, error)

	// Seed loads catalog content. Re-seeding the same content is a no-op.
	Seed(ctx context.Context, skills []model.Skill, roadmaps []model.Roadmap) error
}
