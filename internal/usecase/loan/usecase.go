package loan

import (
	"context"
	"errors"
	"time"

	"listings-backend/internal/domain/asset"
	"listings-backend/internal/domain/custody"
	domainEvent "listings-backend/internal/domain/event"
	"listings-backend/internal/domain/fees"
	domainLoan "listings-backend/internal/domain/loan"
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

// List creates a loan listing against the borrower's asset. No custody
// lock yet; that happens when a lender activates.
func (u *Usecase) List(ctx context.Context, in ListLoanInput) (*LoanDTO, error) {
	if len(in.Borrower) != 32 || len(in.Mint) != 32 || in.Principal == 0 || in.DurationSeconds <= 0 {
		return nil, errors.New("invalid input")
	}
	if in.BasisPoints > fees.BasisPointsDenominator || in.CreatorBasisPoints > fees.BasisPointsDenominator {
		return nil, errors.New("invalid input")
	}

	l := &domainLoan.Loan{
		LoanID:             id.NewID32(),
		Borrower:           in.Borrower,
		Mint:               in.Mint,
		Principal:          in.Principal,
		BasisPoints:        in.BasisPoints,
		CreatorBasisPoints: in.CreatorBasisPoints,
		DurationSeconds:    in.DurationSeconds,
		State:              domainLoan.StateListed,
		StateUpdatedAt:     u.clk.Now(),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Events.Append(ctx, domainEvent.New(
			string(custody.KindLoan), l.Mint, l.LoanID, "", string(domainLoan.StateListed), l.Principal,
		))
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Activate locks the collateral for the loan and starts the clock.
// Fails when another loan already holds the flag, or when a call option
// is active on the same asset.
func (u *Usecase) Activate(ctx context.Context, loanID, lender string) (*LoanDTO, error) {
	if len(lender) != 32 {
		return nil, errors.New("invalid input")
	}
	var out *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return domainLoan.ErrNotFound
		}
		if l.State != domainLoan.StateListed {
			return domainLoan.ErrInvalidTransition
		}

		rec, err := r.Custody.GetOrCreateForUpdate(ctx, l.Mint, l.Borrower)
		if err != nil {
			return err
		}
		wasLocked := rec.Locked()
		if err := rec.Acquire(custody.KindLoan); err != nil {
			return err
		}
		if err := r.Custody.Save(ctx, rec); err != nil {
			return err
		}
		if !wasLocked {
			if err := u.svc.Freeze(ctx, l.Mint, rec.DelegateAuthority); err != nil {
				return err
			}
		}

		start := u.clk.Now().Unix()
		l.Lender = &lender
		l.StartDate = &start
		l.State = domainLoan.StateActive
		l.StateUpdatedAt = u.clk.Now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Events.Append(ctx, domainEvent.New(
			string(custody.KindLoan), l.Mint, l.LoanID,
			string(domainLoan.StateListed), string(domainLoan.StateActive), l.Principal,
		)); err != nil {
			return err
		}
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Repay settles the loan: prorated interest (plus the late surcharge
// when overdue) to the lender, the prorated creator fee split across
// the asset's creators, loan flag released, record destroyed. A
// non-empty creators list is the caller's expectation of who gets paid
// and is checked against the oracle's record before any money moves.
func (u *Usecase) Repay(ctx context.Context, loanID string, creators []string) (*RepaymentDTO, error) {
	var out *RepaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return domainLoan.ErrNotFound
		}
		if l.State != domainLoan.StateActive || l.Lender == nil {
			return domainLoan.ErrInvalidState
		}

		now := u.clk.Now().Unix()
		p, err := l.PaymentDue(now)
		if err != nil {
			return err
		}
		total, err := p.TotalDue()
		if err != nil {
			return err
		}

		md, err := u.oracle.Metadata(ctx, l.Mint)
		if err != nil {
			return err
		}
		if md.Mint != l.Mint {
			return asset.ErrInvalidMint
		}
		if len(creators) > 0 {
			if err := md.VerifyCreators(creators); err != nil {
				return err
			}
		}
		shares, _, err := fees.SplitFee(p.CreatorFee, md.Creators)
		if err != nil {
			return err
		}

		if p.Interest > 0 {
			if err := u.rail.Transfer(ctx, l.Borrower, *l.Lender, p.Interest); err != nil {
				return err
			}
		}
		// Rounding dust from the share split stays with the borrower.
		dist := fees.Distribution{Shares: shares}
		if err := dist.PayOut(ctx, u.rail, l.Borrower); err != nil {
			return err
		}

		rec, err := r.Custody.GetForUpdate(ctx, l.Mint, l.Borrower)
		if err != nil {
			return err
		}
		if err := rec.Release(custody.KindLoan); err != nil {
			return err
		}
		if err := r.Custody.Save(ctx, rec); err != nil {
			return err
		}
		// The asset thaws only if the loan was the last agreement
		// holding it; a concurrent rental keeps it frozen.
		if !rec.Locked() {
			if err := u.svc.Thaw(ctx, l.Mint, rec.DelegateAuthority); err != nil {
				return err
			}
		}

		l.State = domainLoan.StateRepaid
		l.StateUpdatedAt = time.Unix(now, 0).UTC()
		if err := r.Events.Append(ctx, domainEvent.New(
			string(custody.KindLoan), l.Mint, l.LoanID,
			string(domainLoan.StateActive), string(domainLoan.StateRepaid), total,
		)); err != nil {
			return err
		}
		if err := r.Loans.Delete(ctx, l); err != nil {
			return err
		}

		out = &RepaymentDTO{
			LoanID:     l.LoanID,
			Interest:   p.Interest,
			CreatorFee: p.CreatorFee,
			TotalDue:   total,
			Overdue:    p.Overdue,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Repossess moves the collateral to the lender after the loan matures.
// A concurrently hired rental is force-settled first, in the same
// transaction, so the sitting borrower's unearned rent is refunded
// before custody moves.
func (u *Usecase) Repossess(ctx context.Context, loanID string) (*RepossessDTO, error) {
	var out *RepossessDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return domainLoan.ErrNotFound
		}
		if l.State != domainLoan.StateActive || l.Lender == nil {
			return domainLoan.ErrInvalidState
		}
		now := u.clk.Now().Unix()
		if !l.Matured(now) {
			return domainLoan.ErrNotOverdue
		}

		l.State = domainLoan.StateDefaulted
		l.StateUpdatedAt = time.Unix(now, 0).UTC()

		rec, err := r.Custody.GetForUpdate(ctx, l.Mint, l.Borrower)
		if err != nil {
			return err
		}
		if err := rec.Release(custody.KindLoan); err != nil {
			return err
		}

		res, err := settlement.ForceSettleHired(ctx, u.deps(), r, rec, now)
		if err != nil {
			return err
		}
		if err := r.Custody.Save(ctx, rec); err != nil {
			return err
		}

		if err := u.svc.Transfer(ctx, l.Mint, l.Borrower, *l.Lender, rec.DelegateAuthority); err != nil {
			return err
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Events.Append(ctx, domainEvent.New(
			string(custody.KindLoan), l.Mint, l.LoanID,
			string(domainLoan.StateActive), string(domainLoan.StateDefaulted), l.Principal,
		)); err != nil {
			return err
		}
		out = &RepossessDTO{LoanID: l.LoanID, State: string(l.State), RentalSettled: res}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var out *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return domainLoan.ErrNotFound
		}
		out = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(l *domainLoan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:             l.LoanID,
		Borrower:           l.Borrower,
		Mint:               l.Mint,
		Principal:          l.Principal,
		BasisPoints:        l.BasisPoints,
		CreatorBasisPoints: l.CreatorBasisPoints,
		DurationSeconds:    l.DurationSeconds,
		StartDate:          l.StartDate,
		State:              string(l.State),
		CreatedAt:          l.CreatedAt,
	}
	if l.Lender != nil {
		dto.Lender = *l.Lender
	}
	return dto
}
