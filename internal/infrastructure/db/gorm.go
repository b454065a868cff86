package db

import (
	"log"
	"time"

	optionDomain "listings-backend/internal/domain/calloption"
	custodyDomain "listings-backend/internal/domain/custody"
	eventDomain "listings-backend/internal/domain/event"
	loanDomain "listings-backend/internal/domain/loan"
	rentalDomain "listings-backend/internal/domain/rental"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or updates the agreement tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loanDomain.Loan{},
		&rentalDomain.Rental{},
		&optionDomain.CallOption{},
		&custodyDomain.Record{},
		&eventDomain.Event{},
	)
}
