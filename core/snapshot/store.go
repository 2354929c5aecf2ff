// Package snapshot persists the committed delivery slots between scheduling
// runs so that a new run starts from the slots already handed out.
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/greenslot/core/model"
)

// Query filters stored slots. Zero values match everything.
type Query struct {
	Start     time.Time
	End       time.Time
	ProductID uuid.UUID
}

// Match reports whether the slot satisfies q. Start is inclusive, End
// exclusive, both compared against the slot begin.
func (q Query) Match(s model.DeliverySlot) bool {
	if !q.Start.IsZero() && s.Begin.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && !s.Begin.Before(q.End) {
		return false
	}
	if q.ProductID != uuid.Nil && s.ProductID != q.ProductID {
		return false
	}
	return true
}

// Store persists the full set of committed slots.
type Store interface {
	// Save replaces the stored set with slots.
	Save(ctx context.Context, slots []model.DeliverySlot) error
	// Load returns the stored slots matching q ordered by begin.
	Load(ctx context.Context, q Query) ([]model.DeliverySlot, error)
	Close() error
}

// Nop keeps nothing.
type Nop struct{}

func (Nop) Save(context.Context, []model.DeliverySlot) error { return nil }
func (Nop) Load(context.Context, Query) ([]model.DeliverySlot, error) {
	return nil, nil
}
func (Nop) Close() error { return nil }
