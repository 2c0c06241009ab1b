package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the storefront schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&visitorStorageRecord{})
}

// Visitor storage schema mirrors the localstorage Postgres backend.
type visitorStorageRecord struct {
	VisitorID string    `gorm:"primaryKey;column:visitor_id;size:64"`
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (visitorStorageRecord) TableName() string { return "visitor_storage" }
