package mysql

import (
	"context"

	eventDomain "listings-backend/internal/domain/event"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Append(ctx context.Context, e *eventDomain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) ListByMint(ctx context.Context, mint string, limit int) ([]eventDomain.Event, error) {
	var out []eventDomain.Event
	res := r.db.WithContext(ctx).
		Where("mint = ?", mint).
		Order("id ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
