package custody

import "context"

type Repository interface {
	// GetOrCreateForUpdate locks (or inserts) the record for (mint, issuer).
	GetOrCreateForUpdate(ctx context.Context, mint, issuer string) (*Record, error)
	GetForUpdate(ctx context.Context, mint, issuer string) (*Record, error)
	Save(ctx context.Context, r *Record) error
}
