package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/game-storefront/internal/platform/localstorage"
)

var _ localstorage.Backend = (*Backend)(nil)

// Backend persists visitor storage in PostgreSQL. Caller owns DB lifecycle.
type Backend struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBackend(db *gorm.DB) *Backend {
	return &Backend{db: db, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (b *Backend) WithClock(now func() time.Time) {
	if now != nil {
		b.now = now
	}
}

type storageRecord struct {
	VisitorID string    `gorm:"primaryKey;column:visitor_id;size:64"`
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (storageRecord) TableName() string { return "visitor_storage" }

func (b *Backend) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	if err := b.ensureDB(); err != nil {
		return "", false, err
	}
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return "", false, err
	}
	var rec storageRecord
	err = b.db.WithContext(ctx).First(&rec, "visitor_id = ? AND key = ?", visitorID, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.Value, true, nil
}

// Set upserts the value keyed by (visitor_id, key).
func (b *Backend) Set(ctx context.Context, visitorID, key, value string) error {
	if err := b.ensureDB(); err != nil {
		return err
	}
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return err
	}
	now := b.now()
	rec := storageRecord{VisitorID: visitorID, Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (b *Backend) Remove(ctx context.Context, visitorID, key string) error {
	if err := b.ensureDB(); err != nil {
		return err
	}
	visitorID, key, err := localstorage.ValidateAddress(visitorID, key)
	if err != nil {
		return err
	}
	return b.db.WithContext(ctx).Delete(&storageRecord{}, "visitor_id = ? AND key = ?", visitorID, key).Error
}

// PurgeStale deletes entries not written for longer than maxAge. When keys is
// non-empty only those keys are considered. It returns the number of rows removed.
func (b *Backend) PurgeStale(ctx context.Context, maxAge time.Duration, keys ...string) (int64, error) {
	if err := b.ensureDB(); err != nil {
		return 0, err
	}
	if maxAge <= 0 {
		return 0, errors.New("purge max age must be positive")
	}
	cutoff := b.now().Add(-maxAge)
	query := b.db.WithContext(ctx).Where("updated_at <= ?", cutoff)
	if filtered := normalizeKeys(keys); len(filtered) > 0 {
		query = query.Where("key = ANY(?)", pq.Array(filtered))
	}
	result := query.Delete(&storageRecord{})
	return result.RowsAffected, result.Error
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func (b *Backend) ensureDB() error {
	if b == nil || b.db == nil {
		return errors.New("postgres storage backend not configured")
	}
	return nil
}
