package mysql

import (
	"context"
	"errors"

	optionDomain "listings-backend/internal/domain/calloption"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CallOptionRepository struct{ db *gorm.DB }

func NewCallOptionRepository(db *gorm.DB) *CallOptionRepository {
	return &CallOptionRepository{db: db}
}

func (r *CallOptionRepository) Create(ctx context.Context, o *optionDomain.CallOption) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *CallOptionRepository) Save(ctx context.Context, o *optionDomain.CallOption) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *CallOptionRepository) GetByOptionID(ctx context.Context, optionID string) (*optionDomain.CallOption, error) {
	var out optionDomain.CallOption
	res := r.db.WithContext(ctx).Where("option_id = ?", optionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, optionDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *CallOptionRepository) GetByOptionIDForUpdate(ctx context.Context, optionID string) (*optionDomain.CallOption, error) {
	var out optionDomain.CallOption
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("option_id = ?", optionID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, optionDomain.ErrNotFound
	}
	return &out, res.Error
}
