package oraclemock

import (
	"context"

	"listings-backend/internal/domain/asset"
)

var _ asset.MetadataOracle = (*Oracle)(nil)

// Oracle is a function-backed mock of the metadata oracle. Without a
// MetadataFn it answers with Creators/RoyaltyBasisPoints for any mint.
type Oracle struct {
	MetadataFn func(ctx context.Context, mint string) (*asset.Metadata, error)

	Creators           []asset.Creator
	RoyaltyBasisPoints uint16
}

func (o *Oracle) Metadata(ctx context.Context, mint string) (*asset.Metadata, error) {
	if o.MetadataFn != nil {
		return o.MetadataFn(ctx, mint)
	}
	return &asset.Metadata{
		Mint:               mint,
		Creators:           o.Creators,
		RoyaltyBasisPoints: o.RoyaltyBasisPoints,
	}, nil
}
