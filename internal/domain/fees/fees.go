package fees

import (
	"context"
	"errors"
	"math/bits"

	"listings-backend/internal/domain/asset"
	"listings-backend/internal/domain/payment"
)

var ErrNumericalOverflow = errors.New("numerical overflow")

// BasisPointsDenominator: 10_000 basis points = 100%.
const BasisPointsDenominator = 10_000

// MulDiv computes floor(amount * numerator / denominator) through a
// 128-bit intermediate so the product cannot wrap. Fails when the
// quotient itself does not fit uint64, or when denominator is zero.
func MulDiv(amount, numerator, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, ErrNumericalOverflow
	}
	hi, lo := bits.Mul64(amount, numerator)
	// bits.Div64 panics unless hi < denominator; that is exactly the
	// quotient-fits-in-64-bits condition.
	if hi >= denominator {
		return 0, ErrNumericalOverflow
	}
	quo, _ := bits.Div64(hi, lo, denominator)
	return quo, nil
}

// ComputeFee returns floor(amount * basisPoints / 10_000).
func ComputeFee(amount uint64, basisPoints uint16) (uint64, error) {
	return MulDiv(amount, uint64(basisPoints), BasisPointsDenominator)
}

// Share is one creator's cut of a fee, in creator-list order.
type Share struct {
	Address string
	Amount  uint64
}

// Distribution is the result of splitting a payment: the creator shares,
// the total fee they were carved from, and the remainder owed back to
// the payer's counterparty. Rounding always floors, so dust from both
// divisions lands in Remainder, never with a creator.
type Distribution struct {
	Shares    []Share
	Fee       uint64
	Remainder uint64
}

// SplitFee divides an already-computed fee across the creator list:
// each creator gets floor(share% * fee / 100). The second return value
// is the rounding dust left after all shares are carved out.
func SplitFee(fee uint64, creators []asset.Creator) ([]Share, uint64, error) {
	remaining := fee
	shares := make([]Share, 0, len(creators))
	for _, c := range creators {
		cut, err := MulDiv(fee, uint64(c.Share), 100)
		if err != nil {
			return nil, 0, err
		}
		if cut > remaining {
			return nil, 0, ErrNumericalOverflow
		}
		remaining -= cut
		shares = append(shares, Share{Address: c.Address, Amount: cut})
	}
	return shares, remaining, nil
}

// SplitCreatorFees carves the creator royalty out of amount: total fee
// at basisPoints, per-creator floor shares of that fee, and everything
// the creators did not receive (non-fee part plus rounding dust) as
// Remainder. Invariant: sum(shares) + Remainder == amount exactly.
func SplitCreatorFees(amount uint64, basisPoints uint16, creators []asset.Creator) (*Distribution, error) {
	fee, err := ComputeFee(amount, basisPoints)
	if err != nil {
		return nil, err
	}
	shares, dust, err := SplitFee(fee, creators)
	if err != nil {
		return nil, err
	}
	return &Distribution{
		Shares:    shares,
		Fee:       fee,
		Remainder: amount - fee + dust,
	}, nil
}

// PayOut performs one rail transfer per non-zero creator share, in
// creator-list order. The Remainder is the caller's to move.
func (d *Distribution) PayOut(ctx context.Context, rail payment.Rail, payer string) error {
	for _, s := range d.Shares {
		if s.Amount == 0 {
			continue
		}
		if err := rail.Transfer(ctx, payer, s.Address, s.Amount); err != nil {
			return err
		}
	}
	return nil
}
