package event

import "listings-backend/pkg/id"

// New builds a journal row for one transition.
func New(kind, mint, agreementID, prior, next string, amount uint64) *Event {
	return &Event{
		EventID:     id.NewID32(),
		Kind:        kind,
		Mint:        mint,
		AgreementID: agreementID,
		PriorState:  prior,
		NewState:    next,
		Amount:      amount,
	}
}
