package custody

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("custody record not found")
	ErrLockConflict  = errors.New("conflicting agreement holds the custody lock")
	ErrAlreadyLocked = errors.New("agreement kind already holds the custody lock")
	ErrNotLocked     = errors.New("agreement kind does not hold the custody lock")
)

// Kind tags which agreement type holds (or wants) a custody flag.
type Kind string

const (
	KindLoan       Kind = "loan"
	KindRental     Kind = "rental"
	KindCallOption Kind = "call_option"
)

// Record tracks, per (mint, issuer), which agreement kinds currently
// hold the asset's transfer lock. The asset is frozen iff at least one
// flag is set; the flag lifecycle is paired 1:1 with freeze/thaw calls
// by the usecases, never here.
type Record struct {
	ID                uint64         `gorm:"primaryKey;column:id" json:"-"`
	Mint              string         `gorm:"size:32;uniqueIndex:ux_custody_mint_issuer" json:"mint"`
	Issuer            string         `gorm:"size:32;uniqueIndex:ux_custody_mint_issuer" json:"issuer"`
	LoanActive        bool           `gorm:"column:loan_active" json:"loan_active"`
	RentalActive      bool           `gorm:"column:rental_active" json:"rental_active"`
	CallOptionActive  bool           `gorm:"column:call_option_active" json:"call_option_active"`
	DelegateAuthority string         `gorm:"size:32" json:"-"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Record) TableName() string { return "custody_records" }

func (r *Record) held(kind Kind) bool {
	switch kind {
	case KindLoan:
		return r.LoanActive
	case KindRental:
		return r.RentalActive
	default:
		return r.CallOptionActive
	}
}

func (r *Record) set(kind Kind, v bool) {
	switch kind {
	case KindLoan:
		r.LoanActive = v
	case KindRental:
		r.RentalActive = v
	default:
		r.CallOptionActive = v
	}
}

// Locked reports whether any agreement holds the lock, i.e. whether the
// asset must be frozen.
func (r *Record) Locked() bool {
	return r.LoanActive || r.RentalActive || r.CallOptionActive
}

// Acquire sets the flag for kind. A second acquire of the same kind is
// ErrAlreadyLocked. A loan and a call option exclude each other; a
// rental coexists with either.
func (r *Record) Acquire(kind Kind) error {
	if r.held(kind) {
		return ErrAlreadyLocked
	}
	switch kind {
	case KindLoan:
		if r.CallOptionActive {
			return ErrLockConflict
		}
	case KindCallOption:
		if r.LoanActive {
			return ErrLockConflict
		}
	}
	r.set(kind, true)
	return nil
}

// Release clears the flag for kind. Must be called exactly once per
// terminal transition; a clear flag is ErrNotLocked. No agreement may
// clear another's flag, so callers pass only their own kind.
func (r *Record) Release(kind Kind) error {
	if !r.held(kind) {
		return ErrNotLocked
	}
	r.set(kind, false)
	return nil
}
