package event

import (
	"context"
	"time"

	"listings-backend/internal/domain/uow"
)

const defaultLimit = 100

type EventDTO struct {
	EventID     string    `json:"event_id"`
	Kind        string    `json:"kind"`
	Mint        string    `json:"mint"`
	AgreementID string    `json:"agreement_id"`
	PriorState  string    `json:"prior_state,omitempty"`
	NewState    string    `json:"new_state"`
	Amount      uint64    `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(u uow.UnitOfWork) *Usecase {
	return &Usecase{uow: u}
}

// ListByMint returns the journal for one asset, oldest first.
func (u *Usecase) ListByMint(ctx context.Context, mint string, limit int) ([]EventDTO, error) {
	if limit <= 0 || limit > 1_000 {
		limit = defaultLimit
	}
	var out []EventDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		events, err := r.Events.ListByMint(ctx, mint, limit)
		if err != nil {
			return err
		}
		out = make([]EventDTO, 0, len(events))
		for _, e := range events {
			out = append(out, EventDTO{
				EventID:     e.EventID,
				Kind:        e.Kind,
				Mint:        e.Mint,
				AgreementID: e.AgreementID,
				PriorState:  e.PriorState,
				NewState:    e.NewState,
				Amount:      e.Amount,
				CreatedAt:   e.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
