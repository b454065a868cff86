package optionmock

import (
	"context"

	domain "listings-backend/internal/domain/calloption"
)

// Repo is a function-backed mock that satisfies calloption.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, o *domain.CallOption) error
	GetByOptionIDFn          func(ctx context.Context, optionID string) (*domain.CallOption, error)
	GetByOptionIDForUpdateFn func(ctx context.Context, optionID string) (*domain.CallOption, error)
	SaveFn                   func(ctx context.Context, o *domain.CallOption) error
}

func (m *Repo) Create(ctx context.Context, o *domain.CallOption) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOptionID(ctx context.Context, optionID string) (*domain.CallOption, error) {
	if m.GetByOptionIDFn != nil {
		return m.GetByOptionIDFn(ctx, optionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByOptionIDForUpdate(ctx context.Context, optionID string) (*domain.CallOption, error) {
	if m.GetByOptionIDForUpdateFn != nil {
		return m.GetByOptionIDForUpdateFn(ctx, optionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, o *domain.CallOption) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}
