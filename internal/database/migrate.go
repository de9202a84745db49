package database

import (
	"github.com/xpanvictor/xarvis-voice/internal/repository/profile"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&profile.SubjectEntity{},
	)
}
