package mysql

import (
	"context"
	"errors"

	custodyDomain "listings-backend/internal/domain/custody"
	"listings-backend/pkg/id"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustodyRepository struct{ db *gorm.DB }

func NewCustodyRepository(db *gorm.DB) *CustodyRepository { return &CustodyRepository{db: db} }

// GetOrCreateForUpdate locks the custody record for (mint, issuer),
// inserting a fresh unlocked one on first contact. The insert races
// with concurrent first listings; the unique index turns the loser's
// insert into a retryable duplicate-key error inside its tx.
func (r *CustodyRepository) GetOrCreateForUpdate(ctx context.Context, mint, issuer string) (*custodyDomain.Record, error) {
	rec, err := r.GetForUpdate(ctx, mint, issuer)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, custodyDomain.ErrNotFound) {
		return nil, err
	}

	fresh := &custodyDomain.Record{
		Mint:              mint,
		Issuer:            issuer,
		DelegateAuthority: id.NewID32(),
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *CustodyRepository) GetForUpdate(ctx context.Context, mint, issuer string) (*custodyDomain.Record, error) {
	var out custodyDomain.Record
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("mint = ? AND issuer = ?", mint, issuer).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, custodyDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *CustodyRepository) Save(ctx context.Context, rec *custodyDomain.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
