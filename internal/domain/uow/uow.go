package uow

import (
	"context"

	"listings-backend/internal/domain/calloption"
	"listings-backend/internal/domain/custody"
	"listings-backend/internal/domain/event"
	"listings-backend/internal/domain/loan"
	"listings-backend/internal/domain/rental"
)

// Repos is the set of tx-bound repositories a transition works against.
type Repos struct {
	Loans   loan.Repository
	Rentals rental.Repository
	Options calloption.Repository
	Custody custody.Repository
	Events  event.Repository
}

// UnitOfWork runs fn inside one database transaction. A transition and
// any nested force-settlement it triggers share the same tx, so either
// every mutation and payout commits or none do.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
