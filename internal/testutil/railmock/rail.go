package railmock

import (
	"context"
	"fmt"

	"listings-backend/internal/domain/payment"
)

var _ payment.Rail = (*Rail)(nil)

// Transfer is one recorded movement of settlement currency.
type Transfer struct {
	From   string
	To     string
	Amount uint64
}

// Rail records every transfer in order; TransferFn, when set, can
// inject failures (payment.ErrInsufficientFunds in particular).
type Rail struct {
	TransferFn func(ctx context.Context, from, to string, amount uint64) error

	Transfers []Transfer
}

func (r *Rail) Transfer(ctx context.Context, from, to string, amount uint64) error {
	if r.TransferFn != nil {
		if err := r.TransferFn(ctx, from, to, amount); err != nil {
			return err
		}
	}
	r.Transfers = append(r.Transfers, Transfer{From: from, To: to, Amount: amount})
	return nil
}

// Total sums everything sent to an account.
func (r *Rail) Total(to string) uint64 {
	var sum uint64
	for _, t := range r.Transfers {
		if t.To == to {
			sum += t.Amount
		}
	}
	return sum
}

// Trace renders the transfer log for order assertions.
func (r *Rail) Trace() []string {
	out := make([]string, 0, len(r.Transfers))
	for _, t := range r.Transfers {
		out = append(out, fmt.Sprintf("%s->%s:%d", t.From, t.To, t.Amount))
	}
	return out
}
