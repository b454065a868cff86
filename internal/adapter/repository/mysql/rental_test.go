package mysql

import (
	"context"
	"errors"
	"testing"

	rentalDomain "listings-backend/internal/domain/rental"
)

func makeRental(rentalID, mint string) *rentalDomain.Rental {
	return &rentalDomain.Rental{
		RentalID:      rentalID,
		Lender:        "llllllllllllllllllllllllllllllll",
		Mint:          mint,
		AmountPerDay:  1_000,
		EscrowAccount: "esc-" + rentalID,
		State:         rentalDomain.StateListed,
	}
}

func TestRental_CreateAndGet(t *testing.T) {
	repo := NewRentalRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makeRental("r1", "mint-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByRentalID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByRentalID: %v", err)
	}
	if got.AmountPerDay != 1_000 || got.State != rentalDomain.StateListed {
		t.Errorf("unexpected row: %+v", got)
	}
}

func TestRental_GetHiredByMintMatchesOnlyHired(t *testing.T) {
	repo := NewRentalRepository(openTestDB(t))
	ctx := context.Background()

	listed := makeRental("r1", "mint-1")
	if err := repo.Create(ctx, listed); err != nil {
		t.Fatalf("Create listed: %v", err)
	}

	// Listed rentals must not match; only a hired one does.
	if _, err := repo.GetHiredByMintForUpdate(ctx, "mint-1", listed.Lender); !errors.Is(err, rentalDomain.ErrNotFound) {
		t.Fatalf("listed rental matched hired lookup, err = %v", err)
	}

	hired := makeRental("r2", "mint-1")
	borrower := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	start, expiry := int64(0), int64(1_000)
	hired.Borrower = &borrower
	hired.CurrentStart = &start
	hired.CurrentExpiry = &expiry
	hired.EscrowBalance = 500
	hired.State = rentalDomain.StateHired
	if err := repo.Create(ctx, hired); err != nil {
		t.Fatalf("Create hired: %v", err)
	}

	got, err := repo.GetHiredByMintForUpdate(ctx, "mint-1", hired.Lender)
	if err != nil {
		t.Fatalf("GetHiredByMintForUpdate: %v", err)
	}
	if got.RentalID != "r2" || got.EscrowBalance != 500 {
		t.Errorf("unexpected row: %+v", got)
	}

	// Another lender's listing on the same mint is a different custody
	// scope and must not match.
	if _, err := repo.GetHiredByMintForUpdate(ctx, "mint-1", "other-lender"); !errors.Is(err, rentalDomain.ErrNotFound) {
		t.Fatalf("foreign lender matched, err = %v", err)
	}
}

func TestRental_SavePersistsPeriod(t *testing.T) {
	repo := NewRentalRepository(openTestDB(t))
	ctx := context.Background()

	r := makeRental("r1", "mint-1")
	if err := repo.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}

	borrower := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	start, expiry := int64(100), int64(1_100)
	r.Borrower = &borrower
	r.CurrentStart = &start
	r.CurrentExpiry = &expiry
	r.EscrowBalance = 3_000
	r.State = rentalDomain.StateHired
	if err := repo.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByRentalIDForUpdate(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByRentalIDForUpdate: %v", err)
	}
	if got.State != rentalDomain.StateHired || got.EscrowBalance != 3_000 {
		t.Errorf("update not persisted: %+v", got)
	}
	if got.CurrentStart == nil || *got.CurrentStart != 100 || got.CurrentExpiry == nil || *got.CurrentExpiry != 1_100 {
		t.Errorf("period not persisted: %v %v", got.CurrentStart, got.CurrentExpiry)
	}
}
