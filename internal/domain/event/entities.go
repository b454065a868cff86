package event

import (
	"time"
)

// Event is one row of the agreement journal: every state transition
// appends one inside the same transaction that commits the transition.
// Consumed by off-core indexers.
type Event struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	EventID     string    `gorm:"size:32;uniqueIndex:ux_events_event_id" json:"event_id"`
	Kind        string    `gorm:"size:16;index:idx_events_mint" json:"kind"`
	Mint        string    `gorm:"size:32;index:idx_events_mint" json:"mint"`
	AgreementID string    `gorm:"size:32;index" json:"agreement_id"`
	PriorState  string    `gorm:"size:16" json:"prior_state"`
	NewState    string    `gorm:"size:16" json:"new_state"`
	Amount      uint64    `gorm:"not null;default:0" json:"amount"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "agreement_events" }
