package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/xpanvictor/xarvis-voice/internal/domains/profile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormSubjectRepo struct {
	db *gorm.DB
}

func NewGormSubjectRepo(db *gorm.DB) profile.SubjectRepository {
	return &GormSubjectRepo{db: db}
}

// GetByID implements profile.SubjectRepository
func (g *GormSubjectRepo) GetByID(ctx context.Context, id string) (*profile.Subject, error) {
	var entity SubjectEntity
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject by ID: %w", err)
	}
	return entity.ToDomain(), nil
}

// Save implements profile.SubjectRepository
func (g *GormSubjectRepo) Save(ctx context.Context, s *profile.Subject) error {
	var entity SubjectEntity
	entity.FromDomain(s)
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&entity).Error
	if err != nil {
		return fmt.Errorf("failed to save subject: %w", err)
	}
	*s = *entity.ToDomain()
	return nil
}
