package payment

import (
	"context"
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Rail moves the settlement currency between accounts. Each Transfer is
// atomic with the caller's whole operation; surfaced errors abort the
// operation unchanged (ErrInsufficientFunds in particular).
type Rail interface {
	Transfer(ctx context.Context, from, to string, amount uint64) error
}
