package custodymock

import (
	"context"

	domain "listings-backend/internal/domain/custody"
)

// Repo is a function-backed mock that satisfies custody.Repository.
// When no GetOrCreateForUpdateFn is supplied, a fresh unlocked record
// is handed out and kept, so flag lifecycles can be asserted across
// several transitions in one test.
type Repo struct {
	GetOrCreateForUpdateFn func(ctx context.Context, mint, issuer string) (*domain.Record, error)
	GetForUpdateFn         func(ctx context.Context, mint, issuer string) (*domain.Record, error)
	SaveFn                 func(ctx context.Context, r *domain.Record) error

	rec *domain.Record
}

func (m *Repo) GetOrCreateForUpdate(ctx context.Context, mint, issuer string) (*domain.Record, error) {
	if m.GetOrCreateForUpdateFn != nil {
		return m.GetOrCreateForUpdateFn(ctx, mint, issuer)
	}
	if m.rec == nil {
		m.rec = &domain.Record{Mint: mint, Issuer: issuer, DelegateAuthority: "delegate"}
	}
	return m.rec, nil
}

func (m *Repo) GetForUpdate(ctx context.Context, mint, issuer string) (*domain.Record, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, mint, issuer)
	}
	if m.rec == nil {
		return nil, domain.ErrNotFound
	}
	return m.rec, nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Record) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	m.rec = r
	return nil
}

// Record exposes the held record for assertions.
func (m *Repo) Record() *domain.Record { return m.rec }

// Seed installs a record as if it already existed.
func (m *Repo) Seed(r *domain.Record) { m.rec = r }

// Service is a recording mock of the external custody executor. Calls
// holds "freeze:<mint>", "thaw:<mint>" and "transfer:<mint>:<from>:<to>"
// entries in invocation order.
type Service struct {
	FreezeFn   func(ctx context.Context, mint, authority string) error
	ThawFn     func(ctx context.Context, mint, authority string) error
	TransferFn func(ctx context.Context, mint, from, to, authority string) error

	Calls []string
}

func (s *Service) Freeze(ctx context.Context, mint, authority string) error {
	s.Calls = append(s.Calls, "freeze:"+mint)
	if s.FreezeFn != nil {
		return s.FreezeFn(ctx, mint, authority)
	}
	return nil
}

func (s *Service) Thaw(ctx context.Context, mint, authority string) error {
	s.Calls = append(s.Calls, "thaw:"+mint)
	if s.ThawFn != nil {
		return s.ThawFn(ctx, mint, authority)
	}
	return nil
}

func (s *Service) Transfer(ctx context.Context, mint, from, to, authority string) error {
	s.Calls = append(s.Calls, "transfer:"+mint+":"+from+":"+to)
	if s.TransferFn != nil {
		return s.TransferFn(ctx, mint, from, to, authority)
	}
	return nil
}
