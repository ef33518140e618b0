package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillpath/internal/model"
)

// GormStorage implements Store over a relational database.
type GormStorage struct {
	db *gorm.DB
}

var _ Store = (*GormStorage)(nil)

// NewGormStorage builds a GORM-backed store. The schema must already be migrated.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// Models lists every table the store needs, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Skill{},
		&model.Roadmap{},
		&model.Progress{},
	}
}

func (r *GormStorage) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, absent(err)
	}
	return &user, nil
}

func (r *GormStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("id").First(&user).Error; err != nil {
		return nil, absent(err)
	}
	// MySQL's default collation compares case-insensitively.
	if user.Username != username {
		return nil, nil
	}
	return &user, nil
}

func (r *GormStorage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	u := *user
	u.ID = 0
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormStorage) GetSkills(ctx context.Context) ([]model.Skill, error) {
	skills := []model.Skill{}
	if err := r.db.WithContext(ctx).Order("id").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *GormStorage) GetRoadmap(ctx context.Context, skillID uint) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	if err := r.db.WithContext(ctx).Where("skill_id = ?", skillID).Order("id").First(&roadmap).Error; err != nil {
		return nil, absent(err)
	}
	return &roadmap, nil
}

func (r *GormStorage) GetRoadmapByID(ctx context.Context, id uint) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	if err := r.db.WithContext(ctx).First(&roadmap, id).Error; err != nil {
		return nil, absent(err)
	}
	return &roadmap, nil
}

func (r *GormStorage) GetProgress(ctx context.Context, userID, roadmapID uint) (*model.Progress, error) {
	var p model.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
		First(&p).Error
	if err != nil {
		return nil, absent(err)
	}
	return &p, nil
}

func (r *GormStorage) UpdateProgress(ctx context.Context, progress *model.Progress) (*model.Progress, error) {
	p := *progress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.ID == 0 {
			var existing model.Progress
			err := tx.Select("id").
				Where("user_id = ? AND roadmap_id = ?", p.UserID, p.RoadmapID).
				First(&existing).Error
			switch {
			case err == nil:
				p.ID = existing.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormStorage) Seed(ctx context.Context, skills []model.Skill, roadmaps []model.Roadmap) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(skills) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&skills).Error; err != nil {
				return err
			}
		}
		if len(roadmaps) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&roadmaps).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// absent turns "record not found" into the nil result Store uses for absence.
func absent(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
