// Package settlement holds the one escrow-proration routine every
// terminal path shares: voluntary end-of-period close, loan
// repossession and call-option exercise all settle a hired rental
// through the same arithmetic, so the proration rule cannot drift
// between callers.
package settlement

import (
	"context"
	"errors"

	"listings-backend/internal/domain/asset"
	"listings-backend/internal/domain/custody"
	"listings-backend/internal/domain/event"
	"listings-backend/internal/domain/fees"
	"listings-backend/internal/domain/payment"
	"listings-backend/internal/domain/rental"
	"listings-backend/internal/domain/uow"
)

// Deps are the external collaborators settlement needs.
type Deps struct {
	Rail   payment.Rail
	Oracle asset.MetadataOracle
}

// Result reports where the escrow balance went.
type Result struct {
	Earned uint64 `json:"earned"`
	Refund uint64 `json:"refund"`
}

// SettleEscrow pays out a hired rental's escrow at now: the earned
// fraction goes to the lender net of creator fees (creators first, in
// list order, remainder to the lender), the unearned rest refunds to
// the borrower. The escrow balance is zeroed and the period cleared;
// the caller decides the rental's next state.
func SettleEscrow(ctx context.Context, deps Deps, r *rental.Rental, now int64) (*Result, error) {
	if r.State != rental.StateHired {
		return nil, rental.ErrInvalidState
	}
	earned, err := r.EarnedAt(now)
	if err != nil {
		return nil, err
	}
	if err := PayoutEarned(ctx, deps, r, earned); err != nil {
		return nil, err
	}

	refund := r.EscrowBalance - earned
	if refund > 0 && r.Borrower != nil {
		if err := deps.Rail.Transfer(ctx, r.EscrowAccount, *r.Borrower, refund); err != nil {
			return nil, err
		}
	}

	r.EscrowBalance = 0
	r.CurrentStart = nil
	r.CurrentExpiry = nil
	return &Result{Earned: earned, Refund: refund}, nil
}

// PayoutEarned moves an earned amount out of escrow: creator shares
// first, then the remainder to the lender. Shared by full settlement
// and mid-period lender withdrawals.
func PayoutEarned(ctx context.Context, deps Deps, r *rental.Rental, earned uint64) error {
	md, err := deps.Oracle.Metadata(ctx, r.Mint)
	if err != nil {
		return err
	}
	if md.Mint != r.Mint {
		return asset.ErrInvalidMint
	}
	dist, err := fees.SplitCreatorFees(earned, r.CreatorBasisPoints, md.Creators)
	if err != nil {
		return err
	}
	if err := dist.PayOut(ctx, deps.Rail, r.EscrowAccount); err != nil {
		return err
	}
	if dist.Remainder > 0 {
		if err := deps.Rail.Transfer(ctx, r.EscrowAccount, r.Lender, dist.Remainder); err != nil {
			return err
		}
	}
	return nil
}

// ForceSettleHired settles and terminates the hired rental on the
// custody record's (mint, issuer), if one exists. Invoked by loan
// repossession and option exercise inside their own transaction, before
// the asset's custody moves, so the sitting borrower is refunded before
// the asset changes hands. Releases the rental's custody flag on rec
// in memory; the caller persists rec.
func ForceSettleHired(ctx context.Context, deps Deps, r uow.Repos, rec *custody.Record, now int64) (*Result, error) {
	hired, err := r.Rentals.GetHiredByMintForUpdate(ctx, rec.Mint, rec.Issuer)
	if err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	res, err := SettleEscrow(ctx, deps, hired, now)
	if err != nil {
		return nil, err
	}

	hired.State = rental.StateSettled
	if err := r.Rentals.Save(ctx, hired); err != nil {
		return nil, err
	}
	if err := rec.Release(custody.KindRental); err != nil {
		return nil, err
	}
	return res, r.Events.Append(ctx, event.New(
		string(custody.KindRental), hired.Mint, hired.RentalID,
		string(rental.StateHired), string(rental.StateSettled), res.Earned,
	))
}
