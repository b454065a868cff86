package fees

import (
	"context"
	"errors"
	"math"
	"testing"

	"listings-backend/internal/domain/asset"
)

func TestComputeFee_Basic(t *testing.T) {
	got, err := ComputeFee(100_000, 1_000) // 10%
	if err != nil {
		t.Fatalf("ComputeFee err: %v", err)
	}
	if got != 10_000 {
		t.Fatalf("fee = %d, want 10000", got)
	}
}

func TestComputeFee_FloorsTowardsZero(t *testing.T) {
	// 999 * 250 / 10000 = 24.975 → 24
	got, err := ComputeFee(999, 250)
	if err != nil {
		t.Fatalf("ComputeFee err: %v", err)
	}
	if got != 24 {
		t.Fatalf("fee = %d, want 24", got)
	}
}

func TestComputeFee_OverflowNearMaxUint64(t *testing.T) {
	// MaxUint64 at 100% fits (quotient == amount); anything above 10_000
	// bps would not, and MulDiv must reject rather than wrap.
	if got, err := ComputeFee(math.MaxUint64, 10_000); err != nil || got != math.MaxUint64 {
		t.Fatalf("ComputeFee(max, 10000) = %d, %v", got, err)
	}
	if _, err := MulDiv(math.MaxUint64, 10_001, 10_000); !errors.Is(err, ErrNumericalOverflow) {
		t.Fatalf("err = %v, want ErrNumericalOverflow", err)
	}
	// Boundary fuzz: quotients straddling the uint64 limit.
	for _, amount := range []uint64{math.MaxUint64, math.MaxUint64 - 1} {
		for bps := uint64(9_998); bps <= 10_002; bps++ {
			got, err := MulDiv(amount, bps, 10_000)
			if bps <= 10_000 {
				if err != nil {
					t.Fatalf("MulDiv(%d, %d) unexpected err: %v", amount, bps, err)
				}
				if got > amount {
					t.Fatalf("MulDiv(%d, %d) = %d, fee exceeds amount", amount, bps, got)
				}
				continue
			}
			if !errors.Is(err, ErrNumericalOverflow) {
				t.Fatalf("MulDiv(%d, %d) err = %v, want ErrNumericalOverflow", amount, bps, err)
			}
		}
	}
}

func TestMulDiv_ZeroDenominator(t *testing.T) {
	if _, err := MulDiv(1, 1, 0); !errors.Is(err, ErrNumericalOverflow) {
		t.Fatalf("err = %v, want ErrNumericalOverflow", err)
	}
}

func TestSplitCreatorFees_ConservesValue(t *testing.T) {
	creators := []asset.Creator{
		{Address: "c1", Share: 60},
		{Address: "c2", Share: 30},
		{Address: "c3", Share: 10},
	}
	// Amounts chosen to force rounding at both division steps.
	for _, amount := range []uint64{0, 1, 7, 999, 10_001, 123_457, math.MaxUint64 / 3} {
		for _, bps := range []uint16{0, 1, 250, 500, 9_999, 10_000} {
			d, err := SplitCreatorFees(amount, bps, creators)
			if err != nil {
				t.Fatalf("SplitCreatorFees(%d, %d) err: %v", amount, bps, err)
			}
			var sum uint64
			for _, s := range d.Shares {
				sum += s.Amount
			}
			if sum+d.Remainder != amount {
				t.Fatalf("amount=%d bps=%d: shares+remainder = %d, want %d", amount, bps, sum+d.Remainder, amount)
			}
		}
	}
}

func TestSplitCreatorFees_DustGoesToPayerNotCreators(t *testing.T) {
	// fee = 1010 * 1000 / 10000 = 101; floor shares 33+33+34 cover 100
	// of it, so 1 unit of dust must end up in the remainder.
	creators := []asset.Creator{
		{Address: "c1", Share: 33},
		{Address: "c2", Share: 33},
		{Address: "c3", Share: 34},
	}
	d, err := SplitCreatorFees(1_010, 1_000, creators)
	if err != nil {
		t.Fatalf("SplitCreatorFees err: %v", err)
	}
	if d.Fee != 101 {
		t.Fatalf("fee = %d, want 101", d.Fee)
	}
	want := []uint64{33, 33, 34}
	for i, s := range d.Shares {
		if s.Amount != want[i] {
			t.Fatalf("share[%d] = %d, want %d", i, s.Amount, want[i])
		}
	}
	// 1010 - 101 fee + 1 dust
	if d.Remainder != 910 {
		t.Fatalf("remainder = %d, want 910", d.Remainder)
	}
}

func TestSplitFee_OrderPreserved(t *testing.T) {
	creators := []asset.Creator{
		{Address: "zz", Share: 50},
		{Address: "aa", Share: 50},
	}
	shares, dust, err := SplitFee(101, creators)
	if err != nil {
		t.Fatalf("SplitFee err: %v", err)
	}
	if shares[0].Address != "zz" || shares[1].Address != "aa" {
		t.Fatalf("creator order was re-sorted: %+v", shares)
	}
	if shares[0].Amount != 50 || shares[1].Amount != 50 || dust != 1 {
		t.Fatalf("shares=%+v dust=%d", shares, dust)
	}
}

type recordingRail struct {
	calls []string
}

func (r *recordingRail) Transfer(ctx context.Context, from, to string, amount uint64) error {
	r.calls = append(r.calls, from+"->"+to)
	return nil
}

func TestPayOut_OneTransferPerNonZeroShare(t *testing.T) {
	d := &Distribution{Shares: []Share{
		{Address: "c1", Amount: 10},
		{Address: "c2", Amount: 0},
		{Address: "c3", Amount: 5},
	}}
	rail := &recordingRail{}
	if err := d.PayOut(context.Background(), rail, "payer"); err != nil {
		t.Fatalf("PayOut err: %v", err)
	}
	if len(rail.calls) != 2 || rail.calls[0] != "payer->c1" || rail.calls[1] != "payer->c3" {
		t.Fatalf("transfers = %v", rail.calls)
	}
}
