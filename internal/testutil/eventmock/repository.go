package eventmock

import (
	"context"

	domain "listings-backend/internal/domain/event"
)

var _ domain.Repository = (*Repo)(nil)

// Repo appends into memory so tests can assert on the journal.
type Repo struct {
	AppendFn     func(ctx context.Context, e *domain.Event) error
	ListByMintFn func(ctx context.Context, mint string, limit int) ([]domain.Event, error)

	Appended []domain.Event
}

func (m *Repo) Append(ctx context.Context, e *domain.Event) error {
	if m.AppendFn != nil {
		if err := m.AppendFn(ctx, e); err != nil {
			return err
		}
	}
	m.Appended = append(m.Appended, *e)
	return nil
}

func (m *Repo) ListByMint(ctx context.Context, mint string, limit int) ([]domain.Event, error) {
	if m.ListByMintFn != nil {
		return m.ListByMintFn(ctx, mint, limit)
	}
	out := make([]domain.Event, 0, len(m.Appended))
	for _, e := range m.Appended {
		if e.Mint == mint {
			out = append(out, e)
		}
	}
	return out, nil
}
