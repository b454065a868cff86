package mysql

import (
	"context"
	"errors"

	rentalDomain "listings-backend/internal/domain/rental"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RentalRepository struct{ db *gorm.DB }

func NewRentalRepository(db *gorm.DB) *RentalRepository { return &RentalRepository{db: db} }

func (r *RentalRepository) Create(ctx context.Context, e *rentalDomain.Rental) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *RentalRepository) Save(ctx context.Context, e *rentalDomain.Rental) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *RentalRepository) GetByRentalID(ctx context.Context, rentalID string) (*rentalDomain.Rental, error) {
	var out rentalDomain.Rental
	res := r.db.WithContext(ctx).Where("rental_id = ?", rentalID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, rentalDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RentalRepository) GetByRentalIDForUpdate(ctx context.Context, rentalID string) (*rentalDomain.Rental, error) {
	var out rentalDomain.Rental
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("rental_id = ?", rentalID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, rentalDomain.ErrNotFound
	}
	return &out, res.Error
}

// GetHiredByMintForUpdate finds the hired rental sitting on an asset,
// if any. Force settlement during repossession and exercise goes
// through here; ErrNotFound means nothing to settle.
func (r *RentalRepository) GetHiredByMintForUpdate(ctx context.Context, mint, lender string) (*rentalDomain.Rental, error) {
	var out rentalDomain.Rental
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("mint = ? AND lender = ? AND state = ?", mint, lender, rentalDomain.StateHired).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, rentalDomain.ErrNotFound
	}
	return &out, res.Error
}
