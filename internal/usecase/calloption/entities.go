package calloption

import (
	"time"

	"listings-backend/internal/usecase/settlement"
)

type ListOptionInput struct {
	Seller      string `json:"seller"`
	Mint        string `json:"mint"`
	StrikePrice uint64 `json:"strike_price"`
	Expiry      int64  `json:"expiry"`
}

type OptionDTO struct {
	OptionID    string    `json:"option_id"`
	Seller      string    `json:"seller"`
	Buyer       string    `json:"buyer,omitempty"`
	Mint        string    `json:"mint"`
	StrikePrice uint64    `json:"strike_price"`
	Expiry      int64     `json:"expiry"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExerciseDTO reports the strike settlement, including the forced
// rental settlement when the asset was hired out at exercise time.
type ExerciseDTO struct {
	OptionID      string             `json:"option_id"`
	StrikePrice   uint64             `json:"strike_price"`
	CreatorFee    uint64             `json:"creator_fee"`
	SellerProceed uint64             `json:"seller_proceeds"`
	RentalSettled *settlement.Result `json:"rental_settled,omitempty"`
}
