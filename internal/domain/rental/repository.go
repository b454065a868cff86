package rental

import "context"

type Repository interface {
	Create(ctx context.Context, r *Rental) error
	GetByRentalID(ctx context.Context, rentalID string) (*Rental, error)
	GetByRentalIDForUpdate(ctx context.Context, rentalID string) (*Rental, error)
	// GetHiredByMintForUpdate locks the hired rental on (mint, issuer), if
	// any. Used by loan repossession and option exercise to force-settle.
	GetHiredByMintForUpdate(ctx context.Context, mint, lender string) (*Rental, error)
	Save(ctx context.Context, r *Rental) error
}
