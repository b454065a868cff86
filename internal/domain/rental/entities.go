package rental

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"listings-backend/internal/domain/fees"
)

var (
	ErrNotFound     = errors.New("rental not found")
	ErrInvalidState = errors.New("rental state does not permit this operation")
)

const SecondsPerDay = 24 * 60 * 60

type State string

const (
	StateListed State = "listed"
	StateHired  State = "hired"
	// StateSettled is terminal: the agreement was force-settled because a
	// loan repossession or option exercise moved the asset's custody.
	StateSettled State = "settled"
	// StateClosed is terminal: the lender withdrew an un-hired listing.
	StateClosed State = "closed"
)

// Rental is a per-day hire agreement on a single mint. EscrowBalance
// holds the rent paid up front for the current period; the unearned
// part is owed back to the borrower whenever the period ends early.
type Rental struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	RentalID           string         `gorm:"size:32;uniqueIndex:ux_rentals_rental_id_active" json:"rental_id"`
	Lender             string         `gorm:"size:32;index:idx_rentals_mint_lender" json:"lender"`
	Borrower           *string        `gorm:"size:32" json:"borrower,omitempty"`
	Mint               string         `gorm:"size:32;index:idx_rentals_mint_lender" json:"mint"`
	AmountPerDay       uint64         `gorm:"not null" json:"amount_per_day"`
	CreatorBasisPoints uint16         `gorm:"not null" json:"creator_basis_points"`
	EscrowBalance      uint64         `gorm:"not null;default:0" json:"escrow_balance"`
	EscrowAccount      string         `gorm:"size:32" json:"-"`
	CurrentStart       *int64         `json:"current_start,omitempty"`
	CurrentExpiry      *int64         `json:"current_expiry,omitempty"`
	State              State          `gorm:"size:16;default:'listed'" json:"state"`
	StateUpdatedAt     time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Rental) TableName() string { return "rentals" }

// EarnedAt returns how much of the escrow balance the lender has earned
// by now: escrow * elapsed / period, floor-rounded through a 128-bit
// intermediate, clamped to the full balance once the period has lapsed.
// Deliberately integer arithmetic; a float here would make settlements
// platform-dependent.
func (r *Rental) EarnedAt(now int64) (uint64, error) {
	if r.CurrentStart == nil || r.CurrentExpiry == nil {
		return 0, ErrInvalidState
	}
	start, end := *r.CurrentStart, *r.CurrentExpiry
	// Lapsed periods pay out in full before the start is consulted: a
	// post-expiry withdrawal restarts the clock past the expiry, and
	// that rental must still settle.
	if now >= end {
		return r.EscrowBalance, nil
	}
	if end < start || now < start {
		return 0, ErrInvalidState
	}
	period := uint64(end - start)
	elapsed := uint64(now - start)
	return fees.MulDiv(r.EscrowBalance, elapsed, period)
}

// ChargeForDays is the rent for a new period plus the up-front creator
// fee, both checked. The fee is collected into escrow now but only
// distributed at settlement time.
func (r *Rental) ChargeForDays(days uint16) (rent, creatorFee, total uint64, err error) {
	rent, err = fees.MulDiv(r.AmountPerDay, uint64(days), 1)
	if err != nil {
		return 0, 0, 0, err
	}
	creatorFee, err = fees.ComputeFee(rent, r.CreatorBasisPoints)
	if err != nil {
		return 0, 0, 0, err
	}
	total = rent + creatorFee
	if total < rent {
		return 0, 0, 0, fees.ErrNumericalOverflow
	}
	return rent, creatorFee, total, nil
}
