package asset

import "errors"

var (
	ErrInvalidMint           = errors.New("mint does not match metadata")
	ErrInvalidCreatorAddress = errors.New("creator address not on the asset's creator list")
)

// Creator is one entry of an asset's on-record creator list.
// Share is a whole percentage; the list's shares sum to 100.
type Creator struct {
	Address string `json:"address"`
	Share   uint8  `json:"share"`
}

// Metadata is the read-only record the oracle returns for a mint.
// RoyaltyBasisPoints is the asset-level royalty applied to option strikes.
type Metadata struct {
	Mint               string    `json:"mint"`
	Creators           []Creator `json:"creators"`
	RoyaltyBasisPoints uint16    `json:"royalty_basis_points"`
}

// VerifyCreators checks a caller-supplied address list against the
// on-record creator list: same order, same addresses. Extra or missing
// entries are rejected the same way a mismatched address is.
func (m *Metadata) VerifyCreators(addresses []string) error {
	if len(addresses) != len(m.Creators) {
		return ErrInvalidCreatorAddress
	}
	for i, c := range m.Creators {
		if addresses[i] != c.Address {
			return ErrInvalidCreatorAddress
		}
	}
	return nil
}
