package calloption

import "context"

type Repository interface {
	Create(ctx context.Context, o *CallOption) error
	GetByOptionID(ctx context.Context, optionID string) (*CallOption, error)
	GetByOptionIDForUpdate(ctx context.Context, optionID string) (*CallOption, error)
	Save(ctx context.Context, o *CallOption) error
}
