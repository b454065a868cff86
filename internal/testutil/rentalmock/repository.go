package rentalmock

import (
	"context"

	domain "listings-backend/internal/domain/rental"
)

// Repo is a function-backed mock that satisfies rental.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Rental) error
	GetByRentalIDFn           func(ctx context.Context, rentalID string) (*domain.Rental, error)
	GetByRentalIDForUpdateFn  func(ctx context.Context, rentalID string) (*domain.Rental, error)
	GetHiredByMintForUpdateFn func(ctx context.Context, mint, lender string) (*domain.Rental, error)
	SaveFn                    func(ctx context.Context, r *domain.Rental) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Rental) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRentalID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if m.GetByRentalIDFn != nil {
		return m.GetByRentalIDFn(ctx, rentalID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByRentalIDForUpdate(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if m.GetByRentalIDForUpdateFn != nil {
		return m.GetByRentalIDForUpdateFn(ctx, rentalID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetHiredByMintForUpdate(ctx context.Context, mint, lender string) (*domain.Rental, error) {
	if m.GetHiredByMintForUpdateFn != nil {
		return m.GetHiredByMintForUpdateFn(ctx, mint, lender)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, r *domain.Rental) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
