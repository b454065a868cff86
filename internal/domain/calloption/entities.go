package calloption

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("call option not found")
	ErrInvalidState  = errors.New("call option state does not permit this operation")
	ErrOptionExpired = errors.New("call option has expired")
)

type State string

const (
	StateListed    State = "listed"
	StateActive    State = "active"
	StateExercised State = "exercised"
	StateCancelled State = "cancelled"
)

// CallOption is a strike-price option on a single mint. Buyer is set
// only when the option is purchased; Expiry is unix seconds and the
// option is exercisable only while active and now <= expiry.
type CallOption struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	OptionID       string         `gorm:"size:32;uniqueIndex:ux_options_option_id_active" json:"option_id"`
	Seller         string         `gorm:"size:32;index:idx_options_mint_seller" json:"seller"`
	Buyer          *string        `gorm:"size:32" json:"buyer,omitempty"`
	Mint           string         `gorm:"size:32;index:idx_options_mint_seller" json:"mint"`
	StrikePrice    uint64         `gorm:"not null" json:"strike_price"`
	Expiry         int64          `gorm:"not null" json:"expiry"`
	State          State          `gorm:"size:16;default:'listed'" json:"state"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CallOption) TableName() string { return "call_options" }

// Exercisable validates the exercise preconditions without mutating.
func (o *CallOption) Exercisable(now int64) error {
	if o.State != StateActive || o.Buyer == nil {
		return ErrInvalidState
	}
	if now > o.Expiry {
		return ErrOptionExpired
	}
	return nil
}

// Cancellable: a listed option, or an active one whose buyer never
// committed, may be withdrawn by the seller.
func (o *CallOption) Cancellable() error {
	switch o.State {
	case StateListed:
		return nil
	case StateActive:
		if o.Buyer == nil {
			return nil
		}
		return ErrInvalidState
	default:
		return ErrInvalidState
	}
}
