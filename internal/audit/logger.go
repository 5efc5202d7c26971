package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/models"
)

// Logger persists audit events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		StoreID:  ev.StoreID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// --------------------------------------------------
// Query
// --------------------------------------------------

type Filter struct {
	StoreID string
	Action  string
	Entity  string
	From    *time.Time
	To      *time.Time
	Page    int
	Limit   int
}

// Normalize clamps paging to page ≥ 1 and 1..200 rows, default 50.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return f
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&models.AuditLog{})
		if f.StoreID != "" {
			db = db.Where("store_id = ?", f.StoreID)
		}
		if f.Action != "" {
			db = db.Where("action = ?", f.Action)
		}
		if f.Entity != "" {
			db = db.Where("entity = ?", f.Entity)
		}
		if f.From != nil {
			db = db.Where("created_at >= ?", *f.From)
		}
		if f.To != nil {
			db = db.Where("created_at < ?", *f.To)
		}
		return db
	}

	var total int64
	if err := l.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := l.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
