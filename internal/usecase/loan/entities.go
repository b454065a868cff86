package loan

import (
	"time"

	"listings-backend/internal/usecase/settlement"
)

type ListLoanInput struct {
	Borrower           string `json:"borrower"`
	Mint               string `json:"mint"`
	Principal          uint64 `json:"principal"`
	BasisPoints        uint16 `json:"basis_points"`
	CreatorBasisPoints uint16 `json:"creator_basis_points"`
	DurationSeconds    int64  `json:"duration_seconds"`
}

type LoanDTO struct {
	LoanID             string    `json:"loan_id"`
	Borrower           string    `json:"borrower"`
	Lender             string    `json:"lender,omitempty"`
	Mint               string    `json:"mint"`
	Principal          uint64    `json:"principal"`
	BasisPoints        uint16    `json:"basis_points"`
	CreatorBasisPoints uint16    `json:"creator_basis_points"`
	DurationSeconds    int64     `json:"duration_seconds"`
	StartDate          *int64    `json:"start_date,omitempty"`
	State              string    `json:"state"`
	CreatedAt          time.Time `json:"created_at"`
}

// RepaymentDTO reports what the borrower paid on the terminal repay.
type RepaymentDTO struct {
	LoanID     string `json:"loan_id"`
	Interest   uint64 `json:"interest"`
	CreatorFee uint64 `json:"creator_fee"`
	TotalDue   uint64 `json:"total_due"`
	Overdue    bool   `json:"overdue"`
}

// RepossessDTO reports the default, including the forced rental
// settlement when one was hired at repossession time.
type RepossessDTO struct {
	LoanID        string             `json:"loan_id"`
	State         string             `json:"state"`
	RentalSettled *settlement.Result `json:"rental_settled,omitempty"`
}
