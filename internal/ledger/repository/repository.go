package repository

import (
	"golang-stock-ledger/internal/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the ledger tables. Production deployments
// use cmd/migrate; this is for sqlite setups and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(entity.All()...)
}

func deleteAll(db *gorm.DB, model interface{}) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
}
