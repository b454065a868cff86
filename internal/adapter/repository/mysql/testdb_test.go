package mysql

import (
	"testing"

	optionDomain "listings-backend/internal/domain/calloption"
	custodyDomain "listings-backend/internal/domain/custody"
	eventDomain "listings-backend/internal/domain/event"
	loanDomain "listings-backend/internal/domain/loan"
	rentalDomain "listings-backend/internal/domain/rental"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB migrates the full schema into an in-memory sqlite DB. The
// sqlite driver ignores locking clauses, so the ForUpdate paths run
// unchanged.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&loanDomain.Loan{},
		&rentalDomain.Rental{},
		&optionDomain.CallOption{},
		&custodyDomain.Record{},
		&eventDomain.Event{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
