package calloption

import (
	"errors"
	"testing"
)

func TestExercisable(t *testing.T) {
	buyer := "b"
	o := &CallOption{State: StateActive, Buyer: &buyer, Expiry: 1_000}

	if err := o.Exercisable(1_000); err != nil {
		t.Fatalf("exercise exactly at expiry: %v", err)
	}
	if err := o.Exercisable(1_001); !errors.Is(err, ErrOptionExpired) {
		t.Fatalf("past expiry err = %v, want ErrOptionExpired", err)
	}

	o.State = StateListed
	if err := o.Exercisable(500); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("listed err = %v, want ErrInvalidState", err)
	}

	o.State = StateActive
	o.Buyer = nil
	if err := o.Exercisable(500); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("no buyer err = %v, want ErrInvalidState", err)
	}
}

func TestCancellable(t *testing.T) {
	o := &CallOption{State: StateListed}
	if err := o.Cancellable(); err != nil {
		t.Fatalf("listed: %v", err)
	}

	o.State = StateActive
	if err := o.Cancellable(); err != nil {
		t.Fatalf("active without buyer: %v", err)
	}

	buyer := "b"
	o.Buyer = &buyer
	if err := o.Cancellable(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("committed buyer err = %v, want ErrInvalidState", err)
	}

	o.State = StateExercised
	if err := o.Cancellable(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("exercised err = %v, want ErrInvalidState", err)
	}
}
