package mysql

import (
	"context"
	"testing"

	custodyDomain "listings-backend/internal/domain/custody"
)

func TestCustody_GetOrCreateIsIdempotent(t *testing.T) {
	repo := NewCustodyRepository(openTestDB(t))
	ctx := context.Background()

	first, err := repo.GetOrCreateForUpdate(ctx, "mint-1", "issuer-1")
	if err != nil {
		t.Fatalf("GetOrCreateForUpdate: %v", err)
	}
	if first.Locked() {
		t.Fatalf("fresh record must be unlocked: %+v", first)
	}
	if len(first.DelegateAuthority) != 32 {
		t.Fatalf("delegate authority not assigned: %q", first.DelegateAuthority)
	}

	again, err := repo.GetOrCreateForUpdate(ctx, "mint-1", "issuer-1")
	if err != nil {
		t.Fatalf("second GetOrCreateForUpdate: %v", err)
	}
	if again.ID != first.ID || again.DelegateAuthority != first.DelegateAuthority {
		t.Fatalf("second call minted a new record: %+v vs %+v", again, first)
	}
}

func TestCustody_ScopedByMintAndIssuer(t *testing.T) {
	repo := NewCustodyRepository(openTestDB(t))
	ctx := context.Background()

	a, err := repo.GetOrCreateForUpdate(ctx, "mint-1", "issuer-1")
	if err != nil {
		t.Fatalf("GetOrCreateForUpdate: %v", err)
	}
	b, err := repo.GetOrCreateForUpdate(ctx, "mint-1", "issuer-2")
	if err != nil {
		t.Fatalf("GetOrCreateForUpdate: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("different issuers share one custody record")
	}
}

func TestCustody_FlagsRoundTrip(t *testing.T) {
	repo := NewCustodyRepository(openTestDB(t))
	ctx := context.Background()

	rec, err := repo.GetOrCreateForUpdate(ctx, "mint-1", "issuer-1")
	if err != nil {
		t.Fatalf("GetOrCreateForUpdate: %v", err)
	}
	if err := rec.Acquire(custodyDomain.KindLoan); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := rec.Acquire(custodyDomain.KindRental); err != nil {
		t.Fatalf("Acquire rental: %v", err)
	}
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetForUpdate(ctx, "mint-1", "issuer-1")
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if !got.LoanActive || !got.RentalActive || got.CallOptionActive {
		t.Fatalf("flags not persisted: %+v", got)
	}
}
