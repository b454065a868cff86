package custody

import "context"

// Service is the external custody executor that performs the physical
// lock/unlock/move of the asset. Each call succeeds or fails atomically
// with the caller's whole operation; the engine never observes a
// half-applied freeze.
type Service interface {
	Freeze(ctx context.Context, mint, authority string) error
	Thaw(ctx context.Context, mint, authority string) error
	Transfer(ctx context.Context, mint, from, to, authority string) error
}
