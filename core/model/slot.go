package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlotDuration is the length of every delivery slot.
const SlotDuration = time.Hour

// DeliverySlot is a one hour window during which one product may be
// delivered. Two slots are the same slot iff their Begin instants are equal.
type DeliverySlot struct {
	Begin     time.Time `json:"begin"`
	End       time.Time `json:"end"`
	Green     bool      `json:"green"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewDeliverySlot creates an unassigned slot starting at begin. The green
// flag is computed once from policy; a nil policy marks no slot green.
func NewDeliverySlot(begin time.Time, policy GreenPolicy) DeliverySlot {
	s := DeliverySlot{Begin: begin, End: begin.Add(SlotDuration)}
	if policy != nil {
		s.Green = policy.IsGreen(begin)
	}
	return s
}

// Assign returns a copy of the slot carrying the product identifier.
func (s DeliverySlot) Assign(id uuid.UUID) DeliverySlot {
	s.ProductID = id
	return s
}

// Assigned reports whether a product occupies the slot.
func (s DeliverySlot) Assigned() bool { return s.ProductID != uuid.Nil }

// Same reports whether s and o denote the same hour.
func (s DeliverySlot) Same(o DeliverySlot) bool { return s.Begin.Equal(o.Begin) }

func (s DeliverySlot) String() string {
	return fmt.Sprintf("%s to %s", s.Begin.Format(time.RFC3339), s.End.Format(time.RFC3339))
}
