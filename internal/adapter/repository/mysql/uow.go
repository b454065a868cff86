package mysql

import (
	"context"

	"listings-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Loans:   &LoanRepository{db: tx},
			Rentals: &RentalRepository{db: tx},
			Options: &CallOptionRepository{db: tx},
			Custody: &CustodyRepository{db: tx},
			Events:  &EventRepository{db: tx},
		}
		return fn(r)
	})
}
