package rental

import (
	"context"
	"errors"
	"time"

	"listings-backend/internal/domain/asset"
	"listings-backend/internal/domain/custody"
	domainEvent "listings-backend/internal/domain/event"
	"listings-backend/internal/domain/fees"
	"listings-backend/internal/domain/payment"
	domainRental "listings-backend/internal/domain/rental"
	"listings-backend/internal/domain/uow"
	"listings-backend/internal/usecase/settlement"
	"listings-backend/pkg/clock"
	"listings-backend/pkg/id"
)

type Usecase struct {
	uow    uow.UnitOfWork
	svc    custody.Service
	rail   payment.Rail
	oracle asset.MetadataOracle
	clk    clock.Clock
}

func NewUsecase(u uow.UnitOfWork, svc custody.Service, rail payment.Rail, oracle asset.MetadataOracle, clk clock.Clock) *Usecase {
	return &Usecase{uow: u, svc: svc, rail: rail, oracle: oracle, clk: clk}
}

func (u *Usecase) deps() settlement.Deps {
	return settlement.Deps{Rail: u.rail, Oracle: u.oracle}
}

// List puts the asset up for hire. Listing acquires the rental custody
// flag immediately: the asset freezes while it sits on the market, so a
// hirer always receives a lockable asset.
func (u *Usecase) List(ctx context.Context, in ListRentalInput) (*RentalDTO, error) {
	if len(in.Lender) != 32 || len(in.Mint) != 32 || in.AmountPerDay == 0 {
		return nil, errors.New("invalid input")
	}
	if in.CreatorBasisPoints > fees.BasisPointsDenominator {
		return nil, errors.New("invalid input")
	}

	r := &domainRental.Rental{
		RentalID:           id.NewID32(),
		Lender:             in.Lender,
		Mint:               in.Mint,
		AmountPerDay:       in.AmountPerDay,
		CreatorBasisPoints: in.CreatorBasisPoints,
		EscrowAccount:      id.NewID32(),
		State:              domainRental.StateListed,
		StateUpdatedAt:     u.clk.Now(),
	}

	err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		rec, err := repos.Custody.GetOrCreateForUpdate(ctx, in.Mint, in.Lender)
		if err != nil {
			return err
		}
		wasLocked := rec.Locked()
		if err := rec.Acquire(custody.KindRental); err != nil {
			return err
		}
		if err := repos.Custody.Save(ctx, rec); err != nil {
			return err
		}
		if !wasLocked {
			if err := u.svc.Freeze(ctx, in.Mint, rec.DelegateAuthority); err != nil {
				return err
			}
		}
		if err := repos.Rentals.Create(ctx, r); err != nil {
			return err
		}
		return repos.Events.Append(ctx, domainEvent.New(
			string(custody.KindRental), r.Mint, r.RentalID, "", string(domainRental.StateListed), 0,
		))
	})
	if err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

// BeginPeriod charges the borrower days of rent plus the up-front
// creator fee into escrow and opens the hire window. The fee sits in
// escrow untouched until settlement distributes it.
func (u *Usecase) BeginPeriod(ctx context.Context, rentalID, borrower string, days uint16) (*PeriodDTO, error) {
	if len(borrower) != 32 || days == 0 {
		return nil, errors.New("invalid input")
	}
	var out *PeriodDTO
	err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		r, err := repos.Rentals.GetByRentalIDForUpdate(ctx, rentalID)
		if err != nil {
			return domainRental.ErrNotFound
		}
		if r.State != domainRental.StateListed {
			return domainRental.ErrInvalidState
		}

		rent, creatorFee, total, err := r.ChargeForDays(days)
		if err != nil {
			return err
		}
		if err := u.rail.Transfer(ctx, borrower, r.EscrowAccount, total); err != nil {
			return err
		}

		now := u.clk.Now().Unix()
		expiry := now + int64(days)*domainRental.SecondsPerDay
		if r.EscrowBalance+rent < r.EscrowBalance {
			return fees.ErrNumericalOverflow
		}
		r.EscrowBalance += rent
		r.Borrower = &borrower
		r.CurrentStart = &now
		r.CurrentExpiry = &expiry
		r.State = domainRental.StateHired
		r.StateUpdatedAt = time.Unix(now, 0).UTC()
		if err := repos.Rentals.Save(ctx, r); err != nil {
			return err
		}
		if err := repos.Events.Append(ctx, domainEvent.New(
			string(custody.KindRental), r.Mint, r.RentalID,
			string(domainRental.StateListed), string(domainRental.StateHired), total,
		)); err != nil {
			return err
		}
		out = &PeriodDTO{
			RentalID:      r.RentalID,
			Rent:          rent,
			CreatorFee:    creatorFee,
			TotalCharged:  total,
			CurrentStart:  now,
			CurrentExpiry: expiry,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EndPeriod is the voluntary close of a hire: the shared settlement
// routine pays the lender the earned fraction and refunds the borrower
// the rest, then the listing reopens. The custody flag stays held; the
// asset remains listed.
func (u *Usecase) EndPeriod(ctx context.Context, rentalID string) (*SettlementDTO, error) {
	var out *SettlementDTO
	err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		r, err := repos.Rentals.GetByRentalIDForUpdate(ctx, rentalID)
		if err != nil {
			return domainRental.ErrNotFound
		}
		now := u.clk.Now().Unix()
		res, err := settlement.SettleEscrow(ctx, u.deps(), r, now)
		if err != nil {
			return err
		}
		r.Borrower = nil
		r.State = domainRental.StateListed
		r.StateUpdatedAt = time.Unix(now, 0).UTC()
		if err := repos.Rentals.Save(ctx, r); err != nil {
			return err
		}
		if err := repos.Events.Append(ctx, domainEvent.New(
			string(custody.KindRental), r.Mint, r.RentalID,
			string(domainRental.StateHired), string(domainRental.StateListed), res.Earned,
		)); err != nil {
			return err
		}
		out = &SettlementDTO{RentalID: r.RentalID, State: string(r.State), Result: res}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Withdraw lets the lender draw the earned-so-far fraction mid-period.
// Creators are paid on the withdrawal and the period restarts from now,
// so a later settlement prorates only what is left.
func (u *Usecase) Withdraw(ctx context.Context, rentalID string) (*WithdrawalDTO, error) {
	var out *WithdrawalDTO
	err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		r, err := repos.Rentals.GetByRentalIDForUpdate(ctx, rentalID)
		if err != nil {
			return domainRental.ErrNotFound
		}
		if r.State != domainRental.StateHired {
			return domainRental.ErrInvalidState
		}
		now := u.clk.Now().Unix()
		earned, err := r.EarnedAt(now)
		if err != nil {
			return err
		}
		if err := settlement.PayoutEarned(ctx, u.deps(), r, earned); err != nil {
			return err
		}
		r.EscrowBalance -= earned
		r.CurrentStart = &now
		if err := repos.Rentals.Save(ctx, r); err != nil {
			return err
		}
		if err := repos.Events.Append(ctx, domainEvent.New(
			string(custody.KindRental), r.Mint, r.RentalID,
			string(domainRental.StateHired), string(domainRental.StateHired), earned,
		)); err != nil {
			return err
		}
		out = &WithdrawalDTO{RentalID: r.RentalID, Withdrawn: earned, RemainingBalance: r.EscrowBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close withdraws an un-hired listing and releases the rental flag.
func (u *Usecase) Close(ctx context.Context, rentalID string) (*RentalDTO, error) {
	var out *RentalDTO
	err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		r, err := repos.Rentals.GetByRentalIDForUpdate(ctx, rentalID)
		if err != nil {
			return domainRental.ErrNotFound
		}
		if r.State != domainRental.StateListed {
			return domainRental.ErrInvalidState
		}

		rec, err := repos.Custody.GetForUpdate(ctx, r.Mint, r.Lender)
		if err != nil {
			return err
		}
		if err := rec.Release(custody.KindRental); err != nil {
			return err
		}
		if err := repos.Custody.Save(ctx, rec); err != nil {
			return err
		}
		if !rec.Locked() {
			if err := u.svc.Thaw(ctx, r.Mint, rec.DelegateAuthority); err != nil {
				return err
			}
		}

		r.State = domainRental.StateClosed
		r.StateUpdatedAt = u.clk.Now()
		if err := repos.Rentals.Save(ctx, r); err != nil {
			return err
		}
		if err := repos.Events.Append(ctx, domainEvent.New(
			string(custody.KindRental), r.Mint, r.RentalID,
			string(domainRental.StateListed), string(domainRental.StateClosed), 0,
		)); err != nil {
			return err
		}
		out = toDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, rentalID string) (*RentalDTO, error) {
	var out *RentalDTO
	err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		r, err := repos.Rentals.GetByRentalID(ctx, rentalID)
		if err != nil {
			return domainRental.ErrNotFound
		}
		out = toDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(r *domainRental.Rental) *RentalDTO {
	dto := &RentalDTO{
		RentalID:           r.RentalID,
		Lender:             r.Lender,
		Mint:               r.Mint,
		AmountPerDay:       r.AmountPerDay,
		CreatorBasisPoints: r.CreatorBasisPoints,
		EscrowBalance:      r.EscrowBalance,
		CurrentStart:       r.CurrentStart,
		CurrentExpiry:      r.CurrentExpiry,
		State:              string(r.State),
		CreatedAt:          r.CreatedAt,
	}
	if r.Borrower != nil {
		dto.Borrower = *r.Borrower
	}
	return dto
}
