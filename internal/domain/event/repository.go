package event

import "context"

type Repository interface {
	Append(ctx context.Context, e *Event) error
	ListByMint(ctx context.Context, mint string, limit int) ([]Event, error)
}
