package rental

import (
	"time"

	"listings-backend/internal/usecase/settlement"
)

type ListRentalInput struct {
	Lender             string `json:"lender"`
	Mint               string `json:"mint"`
	AmountPerDay       uint64 `json:"amount_per_day"`
	CreatorBasisPoints uint16 `json:"creator_basis_points"`
}

type RentalDTO struct {
	RentalID           string    `json:"rental_id"`
	Lender             string    `json:"lender"`
	Borrower           string    `json:"borrower,omitempty"`
	Mint               string    `json:"mint"`
	AmountPerDay       uint64    `json:"amount_per_day"`
	CreatorBasisPoints uint16    `json:"creator_basis_points"`
	EscrowBalance      uint64    `json:"escrow_balance"`
	CurrentStart       *int64    `json:"current_start,omitempty"`
	CurrentExpiry      *int64    `json:"current_expiry,omitempty"`
	State              string    `json:"state"`
	CreatedAt          time.Time `json:"created_at"`
}

// PeriodDTO reports the up-front charge for a new hire period.
type PeriodDTO struct {
	RentalID      string `json:"rental_id"`
	Rent          uint64 `json:"rent"`
	CreatorFee    uint64 `json:"creator_fee"`
	TotalCharged  uint64 `json:"total_charged"`
	CurrentStart  int64  `json:"current_start"`
	CurrentExpiry int64  `json:"current_expiry"`
}

// SettlementDTO wraps the shared proration result.
type SettlementDTO struct {
	RentalID string             `json:"rental_id"`
	State    string             `json:"state"`
	Result   *settlement.Result `json:"result"`
}

// WithdrawalDTO reports a mid-period draw by the lender.
type WithdrawalDTO struct {
	RentalID         string `json:"rental_id"`
	Withdrawn        uint64 `json:"withdrawn"`
	RemainingBalance uint64 `json:"remaining_balance"`
}
