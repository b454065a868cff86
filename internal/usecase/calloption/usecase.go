package calloption

import (
	"context"
	"errors"
	"time"

	"listings-backend/internal/domain/asset"
	domainOption "listings-backend/internal/domain/calloption"
	"listings-backend/internal/domain/custody"
	domainEvent "listings-backend/internal/domain/event"
	"listings-backend/internal/domain/fees"
	"listings-backend/internal/domain/payment"
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

// List writes the option and locks the underlying. Listing conflicts
// with an active loan on the same asset; a rental does not.
func (u *Usecase) List(ctx context.Context, in ListOptionInput) (*OptionDTO, error) {
	if len(in.Seller) != 32 || len(in.Mint) != 32 || in.StrikePrice == 0 {
		return nil, errors.New("invalid input")
	}
	if in.Expiry <= u.clk.Now().Unix() {
		return nil, errors.New("invalid input")
	}

	o := &domainOption.CallOption{
		OptionID:       id.NewID32(),
		Seller:         in.Seller,
		Mint:           in.Mint,
		StrikePrice:    in.StrikePrice,
		Expiry:         in.Expiry,
		State:          domainOption.StateListed,
		StateUpdatedAt: u.clk.Now(),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rec, err := r.Custody.GetOrCreateForUpdate(ctx, in.Mint, in.Seller)
		if err != nil {
			return err
		}
		wasLocked := rec.Locked()
		if err := rec.Acquire(custody.KindCallOption); err != nil {
			return err
		}
		if err := r.Custody.Save(ctx, rec); err != nil {
			return err
		}
		if !wasLocked {
			if err := u.svc.Freeze(ctx, in.Mint, rec.DelegateAuthority); err != nil {
				return err
			}
		}
		if err := r.Options.Create(ctx, o); err != nil {
			return err
		}
		return r.Events.Append(ctx, domainEvent.New(
			string(custody.KindCallOption), o.Mint, o.OptionID, "", string(domainOption.StateListed), o.StrikePrice,
		))
	})
	if err != nil {
		return nil, err
	}
	return toDTO(o), nil
}

// Buy commits a buyer to the option. Premium escrow is the caller's
// concern, outside the settlement core.
func (u *Usecase) Buy(ctx context.Context, optionID, buyer string) (*OptionDTO, error) {
	if len(buyer) != 32 {
		return nil, errors.New("invalid input")
	}
	var out *OptionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Options.GetByOptionIDForUpdate(ctx, optionID)
		if err != nil {
			return domainOption.ErrNotFound
		}
		if o.State != domainOption.StateListed {
			return domainOption.ErrInvalidState
		}
		if now := u.clk.Now().Unix(); now > o.Expiry {
			return domainOption.ErrOptionExpired
		}

		o.Buyer = &buyer
		o.State = domainOption.StateActive
		o.StateUpdatedAt = u.clk.Now()
		if err := r.Options.Save(ctx, o); err != nil {
			return err
		}
		if err := r.Events.Append(ctx, domainEvent.New(
			string(custody.KindCallOption), o.Mint, o.OptionID,
			string(domainOption.StateListed), string(domainOption.StateActive), o.StrikePrice,
		)); err != nil {
			return err
		}
		out = toDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exercise settles the option. Ordering is a hard invariant: mark
// exercised, force-settle a hired rental so the sitting borrower gets
// their unearned rent back, only then move custody to the buyer, then
// split the strike across creators, then pay the seller the remainder.
// A non-empty creators list is checked against the oracle's record
// before the royalty split.
func (u *Usecase) Exercise(ctx context.Context, optionID string, creators []string) (*ExerciseDTO, error) {
	var out *ExerciseDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Options.GetByOptionIDForUpdate(ctx, optionID)
		if err != nil {
			return domainOption.ErrNotFound
		}
		now := u.clk.Now().Unix()
		if err := o.Exercisable(now); err != nil {
			return err
		}

		// Resolve the royalty record up front: a stale mint or a
		// mismatched creator list must reject before anything settles.
		md, err := u.oracle.Metadata(ctx, o.Mint)
		if err != nil {
			return err
		}
		if md.Mint != o.Mint {
			return asset.ErrInvalidMint
		}
		if len(creators) > 0 {
			if err := md.VerifyCreators(creators); err != nil {
				return err
			}
		}

		o.State = domainOption.StateExercised
		o.StateUpdatedAt = time.Unix(now, 0).UTC()

		rec, err := r.Custody.GetForUpdate(ctx, o.Mint, o.Seller)
		if err != nil {
			return err
		}
		if err := rec.Release(custody.KindCallOption); err != nil {
			return err
		}

		res, err := settlement.ForceSettleHired(ctx, u.deps(), r, rec, now)
		if err != nil {
			return err
		}
		if err := r.Custody.Save(ctx, rec); err != nil {
			return err
		}

		if err := u.svc.Transfer(ctx, o.Mint, o.Seller, *o.Buyer, rec.DelegateAuthority); err != nil {
			return err
		}

		dist, err := fees.SplitCreatorFees(o.StrikePrice, md.RoyaltyBasisPoints, md.Creators)
		if err != nil {
			return err
		}
		if err := dist.PayOut(ctx, u.rail, *o.Buyer); err != nil {
			return err
		}
		if dist.Remainder > 0 {
			if err := u.rail.Transfer(ctx, *o.Buyer, o.Seller, dist.Remainder); err != nil {
				return err
			}
		}

		if err := r.Options.Save(ctx, o); err != nil {
			return err
		}
		if err := r.Events.Append(ctx, domainEvent.New(
			string(custody.KindCallOption), o.Mint, o.OptionID,
			string(domainOption.StateActive), string(domainOption.StateExercised), o.StrikePrice,
		)); err != nil {
			return err
		}
		out = &ExerciseDTO{
			OptionID:      o.OptionID,
			StrikePrice:   o.StrikePrice,
			CreatorFee:    dist.Fee,
			SellerProceed: dist.Remainder,
			RentalSettled: res,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel withdraws a listed option (or an active one whose buyer never
// committed) and releases the custody flag.
func (u *Usecase) Cancel(ctx context.Context, optionID string) (*OptionDTO, error) {
	var out *OptionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Options.GetByOptionIDForUpdate(ctx, optionID)
		if err != nil {
			return domainOption.ErrNotFound
		}
		if err := o.Cancellable(); err != nil {
			return err
		}
		prior := o.State

		rec, err := r.Custody.GetForUpdate(ctx, o.Mint, o.Seller)
		if err != nil {
			return err
		}
		if err := rec.Release(custody.KindCallOption); err != nil {
			return err
		}
		if err := r.Custody.Save(ctx, rec); err != nil {
			return err
		}
		if !rec.Locked() {
			if err := u.svc.Thaw(ctx, o.Mint, rec.DelegateAuthority); err != nil {
				return err
			}
		}

		o.State = domainOption.StateCancelled
		o.StateUpdatedAt = u.clk.Now()
		if err := r.Options.Save(ctx, o); err != nil {
			return err
		}
		if err := r.Events.Append(ctx, domainEvent.New(
			string(custody.KindCallOption), o.Mint, o.OptionID,
			string(prior), string(domainOption.StateCancelled), 0,
		)); err != nil {
			return err
		}
		out = toDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, optionID string) (*OptionDTO, error) {
	var out *OptionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Options.GetByOptionID(ctx, optionID)
		if err != nil {
			return domainOption.ErrNotFound
		}
		out = toDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(o *domainOption.CallOption) *OptionDTO {
	dto := &OptionDTO{
		OptionID:    o.OptionID,
		Seller:      o.Seller,
		Mint:        o.Mint,
		StrikePrice: o.StrikePrice,
		Expiry:      o.Expiry,
		State:       string(o.State),
		CreatedAt:   o.CreatedAt,
	}
	if o.Buyer != nil {
		dto.Buyer = *o.Buyer
	}
	return dto
}
