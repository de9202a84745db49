package profile

import (
	"time"

	"github.com/xpanvictor/xarvis-voice/internal/domains/profile"
	"gorm.io/gorm"
)

// SubjectEntity represents the database entity for Subject with GORM tags
type SubjectEntity struct {
	ID          string         `gorm:"primaryKey;type:varchar(64);not null"`
	DisplayName string         `gorm:"column:display_name;type:varchar(255)"`
	Interests   []string       `gorm:"serializer:json;type:json"`
	Notes       string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (SubjectEntity) TableName() string {
	return "subjects"
}

func (e *SubjectEntity) ToDomain() *profile.Subject {
	return &profile.Subject{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		Interests:   append([]string(nil), e.Interests...),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (e *SubjectEntity) FromDomain(s *profile.Subject) {
	e.ID = s.ID
	e.DisplayName = s.DisplayName
	e.Interests = append([]string(nil), s.Interests...)
	e.Notes = s.Notes
	e.CreatedAt = s.CreatedAt
	e.UpdatedAt = s.UpdatedAt
}
