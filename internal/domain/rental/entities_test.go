package rental

import (
	"errors"
	"math"
	"testing"

	"listings-backend/internal/domain/fees"
)

func hired(balance uint64, start, expiry int64) *Rental {
	return &Rental{
		State:         StateHired,
		EscrowBalance: balance,
		CurrentStart:  &start,
		CurrentExpiry: &expiry,
	}
}

func TestEarnedAt_Midpoint(t *testing.T) {
	// period [0,1000], escrow 1000, settle at t=500 ⇒ earned 500.
	r := hired(1_000, 0, 1_000)
	got, err := r.EarnedAt(500)
	if err != nil {
		t.Fatalf("EarnedAt err: %v", err)
	}
	if got != 500 {
		t.Fatalf("earned = %d, want 500", got)
	}
}

func TestEarnedAt_ClampsAfterExpiry(t *testing.T) {
	r := hired(200, 0, 1_000)
	for _, now := range []int64{1_000, 1_001, math.MaxInt64} {
		got, err := r.EarnedAt(now)
		if err != nil {
			t.Fatalf("EarnedAt(%d) err: %v", now, err)
		}
		if got != 200 {
			t.Fatalf("EarnedAt(%d) = %d, want full balance 200", now, got)
		}
	}
}

func TestEarnedAt_FloorsFraction(t *testing.T) {
	// 100 * 1/3 = 33.33… ⇒ 33, never 34.
	r := hired(100, 0, 3)
	got, err := r.EarnedAt(1)
	if err != nil {
		t.Fatalf("EarnedAt err: %v", err)
	}
	if got != 33 {
		t.Fatalf("earned = %d, want 33", got)
	}
}

func TestEarnedAt_LargeBalanceNoOverflow(t *testing.T) {
	// escrow near MaxUint64 over a long period; the 128-bit intermediate
	// must keep this exact.
	r := hired(math.MaxUint64-1, 0, 1<<62)
	got, err := r.EarnedAt(1 << 61)
	if err != nil {
		t.Fatalf("EarnedAt err: %v", err)
	}
	const want = uint64(math.MaxUint64-1) / 2
	if got != want {
		t.Fatalf("earned = %d, want %d", got, want)
	}
}

func TestEarnedAt_StartRestartedPastExpiry(t *testing.T) {
	// A post-expiry withdrawal leaves CurrentStart beyond CurrentExpiry.
	// The period is lapsed regardless, so the remaining balance is earned
	// rather than the rental erroring forever.
	r := hired(600, 1_500, 1_000)
	got, err := r.EarnedAt(2_000)
	if err != nil {
		t.Fatalf("EarnedAt err: %v", err)
	}
	if got != 600 {
		t.Fatalf("earned = %d, want full balance 600", got)
	}
}

func TestEarnedAt_UnsetPeriodIsInvalidState(t *testing.T) {
	r := &Rental{State: StateHired, EscrowBalance: 10}
	if _, err := r.EarnedAt(5); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	start := int64(10)
	r.CurrentStart = &start
	if _, err := r.EarnedAt(5); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestEarnedAt_ClockBeforeStart(t *testing.T) {
	r := hired(100, 50, 150)
	if _, err := r.EarnedAt(49); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestChargeForDays(t *testing.T) {
	r := &Rental{AmountPerDay: 1_000, CreatorBasisPoints: 500}
	rent, fee, total, err := r.ChargeForDays(3)
	if err != nil {
		t.Fatalf("ChargeForDays err: %v", err)
	}
	if rent != 3_000 || fee != 150 || total != 3_150 {
		t.Fatalf("rent=%d fee=%d total=%d", rent, fee, total)
	}
}

func TestChargeForDays_Overflow(t *testing.T) {
	r := &Rental{AmountPerDay: math.MaxUint64, CreatorBasisPoints: 0}
	if _, _, _, err := r.ChargeForDays(2); !errors.Is(err, fees.ErrNumericalOverflow) {
		t.Fatalf("err = %v, want ErrNumericalOverflow", err)
	}
}
