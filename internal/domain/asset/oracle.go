package asset

import "context"

// MetadataOracle resolves a mint to its creator list and royalty rate.
// The engine treats this as read-only.
type MetadataOracle interface {
	Metadata(ctx context.Context, mint string) (*Metadata, error)
}
