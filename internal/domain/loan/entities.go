package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"listings-backend/internal/domain/fees"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidState      = errors.New("loan state does not permit this operation")
	ErrNotOverdue        = errors.New("loan is not overdue")
	ErrInvalidTransition = errors.New("invalid loan state transition")
)

const (
	SecondsPerYear = 365 * 24 * 60 * 60

	// Flat surcharge on the principal when repayment lands past the due date.
	LateFeeBasisPoints uint16 = 500
)

type State string

const (
	StateListed    State = "listed"
	StateActive    State = "active"
	StateRepaid    State = "repaid"
	StateDefaulted State = "defaulted"
)

// Loan is a principal-against-collateral agreement on a single mint.
// Amounts are in the smallest currency unit; BasisPoints is the annual
// interest rate. StartDate (unix seconds) is set once on activation and
// immutable afterwards.
type Loan struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	Borrower           string         `gorm:"size:32;index:idx_loans_mint_borrower" json:"borrower"`
	Lender             *string        `gorm:"size:32" json:"lender,omitempty"`
	Mint               string         `gorm:"size:32;index:idx_loans_mint_borrower" json:"mint"`
	Principal          uint64         `gorm:"not null" json:"principal"`
	BasisPoints        uint16         `gorm:"not null" json:"basis_points"`
	CreatorBasisPoints uint16         `gorm:"not null" json:"creator_basis_points"`
	DurationSeconds    int64          `gorm:"not null" json:"duration_seconds"`
	StartDate          *int64         `json:"start_date,omitempty"`
	State              State          `gorm:"size:16;default:'listed'" json:"state"`
	StateUpdatedAt     time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Payment is what repayment costs at a given instant: the lender's
// interest (late surcharge folded in when overdue) and the prorated
// creator fee, which is never surcharged.
type Payment struct {
	Interest   uint64
	CreatorFee uint64
	Overdue    bool
}

func (p Payment) TotalDue() (uint64, error) {
	total := p.Interest + p.CreatorFee
	if total < p.Interest {
		return 0, fees.ErrNumericalOverflow
	}
	return total, nil
}

// PaymentDue computes the repayment amounts at now (unix seconds).
// Interest is the annual fee linearly prorated over elapsed seconds.
func (l *Loan) PaymentDue(now int64) (*Payment, error) {
	if l.State != StateActive || l.StartDate == nil {
		return nil, ErrInvalidState
	}
	start := *l.StartDate
	if now < start {
		return nil, fees.ErrNumericalOverflow
	}
	elapsed := uint64(now - start)
	overdue := now > start+l.DurationSeconds

	annualFee, err := fees.ComputeFee(l.Principal, l.BasisPoints)
	if err != nil {
		return nil, err
	}
	interest, err := fees.MulDiv(annualFee, elapsed, SecondsPerYear)
	if err != nil {
		return nil, err
	}
	if overdue {
		lateFee, err := fees.ComputeFee(l.Principal, LateFeeBasisPoints)
		if err != nil {
			return nil, err
		}
		if interest+lateFee < interest {
			return nil, fees.ErrNumericalOverflow
		}
		interest += lateFee
	}

	creatorAnnual, err := fees.ComputeFee(l.Principal, l.CreatorBasisPoints)
	if err != nil {
		return nil, err
	}
	creatorFee, err := fees.MulDiv(creatorAnnual, elapsed, SecondsPerYear)
	if err != nil {
		return nil, err
	}

	return &Payment{Interest: interest, CreatorFee: creatorFee, Overdue: overdue}, nil
}

// Matured reports whether the full duration has elapsed, i.e. whether
// the lender may repossess the collateral.
func (l *Loan) Matured(now int64) bool {
	return l.StartDate != nil && now-*l.StartDate >= l.DurationSeconds
}
