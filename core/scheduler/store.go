package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/greenslot/core/model"
)

// ErrSlotRejected is returned by Restore when stored slots do not fit the
// configured grid.
var ErrSlotRejected = errors.New("slot rejected")

// Overlaps reports whether slot and the half-open interval [begin, end)
// share any instant. Intervals that only touch do not overlap; containment
// in either direction does.
func Overlaps(slot model.DeliverySlot, begin, end time.Time) bool {
	return slot.Begin.Before(end) && begin.Before(slot.End)
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// dayGrid holds one calendar day. Index i is the slot starting at
// firstHour+i, so the grid can never hold more than the daily capacity.
type dayGrid struct {
	slots []*model.DeliverySlot
	used  int
}

// Store holds the committed delivery slots of a scheduling horizon. It is
// safe for concurrent use; Reserve is the atomic find-and-commit primitive.
type Store struct {
	mu        sync.Mutex
	firstHour int
	lastHour  int
	loc       *time.Location
	policy    model.GreenPolicy
	days      map[dayKey]*dayGrid
	byProduct map[uuid.UUID]*model.DeliverySlot
	size      int
}

// NewStore creates an empty store for the delivery hours of cfg. Slots built
// by the store take their green flag from policy.
func NewStore(cfg SchedulerConfig, policy model.GreenPolicy) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Store{
		firstHour: cfg.FirstHour,
		lastHour:  cfg.LastHour,
		loc:       loc,
		policy:    policy,
		days:      make(map[dayKey]*dayGrid),
		byProduct: make(map[uuid.UUID]*model.DeliverySlot),
	}, nil
}

// Capacity is the maximum number of slots per calendar day.
func (s *Store) Capacity() int { return s.lastHour - s.firstHour + 1 }

// Location is the time zone the hourly grid is laid out in.
func (s *Store) Location() *time.Location { return s.loc }

// Len returns the number of committed slots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// CountForDay returns the number of committed slots lying within the
// calendar day carried by day.
func (s *Store) CountForDay(day time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked(day)
}

func (s *Store) countLocked(day time.Time) int {
	g := s.days[keyOf(day)]
	if g == nil {
		return 0
	}
	begin := s.startOfDay(day)
	end := begin.AddDate(0, 0, 1)
	n := 0
	for _, slot := range g.slots {
		if slot != nil && Overlaps(*slot, begin, end) {
			n++
		}
	}
	return n
}

// NextFreeSlot returns the earliest hour of day that is not committed yet.
// The returned slot is not stored; pass it to Commit to take it.
func (s *Store) NextFreeSlot(day time.Time) (model.DeliverySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextFreeLocked(day)
}

func (s *Store) nextFreeLocked(day time.Time) (model.DeliverySlot, bool) {
	if s.countLocked(day) >= s.Capacity() {
		return model.DeliverySlot{}, false
	}
	g := s.days[keyOf(day)]
	for h := s.firstHour; h <= s.lastHour; h++ {
		if g != nil && g.slots[h-s.firstHour] != nil {
			continue
		}
		return model.NewDeliverySlot(s.hourOf(day, h), s.policy), true
	}
	return model.DeliverySlot{}, false
}

// SlotOf returns the slot held by the product, if any.
func (s *Store) SlotOf(productID uuid.UUID) (model.DeliverySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.byProduct[productID]
	if !ok {
		return model.DeliverySlot{}, false
	}
	return *slot, true
}

// Commit stores slot unless it is misaligned or outside the delivery hours,
// its hour is taken or its day is full, or its product already holds a slot.
// It reports whether the slot was stored.
func (s *Store) Commit(slot model.DeliverySlot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(slot)
}

func (s *Store) commitLocked(slot model.DeliverySlot) bool {
	begin := slot.Begin.In(s.loc)
	if begin.Minute() != 0 || begin.Second() != 0 || begin.Nanosecond() != 0 {
		return false
	}
	if !slot.End.Equal(slot.Begin.Add(model.SlotDuration)) {
		return false
	}
	h := begin.Hour()
	if h < s.firstHour || h > s.lastHour {
		return false
	}
	if _, held := s.byProduct[slot.ProductID]; held && slot.Assigned() {
		return false
	}
	key := keyOf(begin)
	g := s.days[key]
	if g == nil {
		g = &dayGrid{slots: make([]*model.DeliverySlot, s.Capacity())}
		s.days[key] = g
	}
	idx := h - s.firstHour
	if g.slots[idx] != nil || g.used >= len(g.slots) {
		return false
	}
	stored := slot
	stored.Begin = begin
	stored.End = begin.Add(model.SlotDuration)
	g.slots[idx] = &stored
	if stored.Assigned() {
		s.byProduct[stored.ProductID] = &stored
	}
	g.used++
	s.size++
	return true
}

// Reserve commits the earliest free hour of day to the product as one
// atomic step. It fails when the product already holds a slot.
func (s *Store) Reserve(day time.Time, productID uuid.UUID) (model.DeliverySlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.nextFreeLocked(day)
	if !ok {
		return model.DeliverySlot{}, false
	}
	slot = slot.Assign(productID)
	if !s.commitLocked(slot) {
		return model.DeliverySlot{}, false
	}
	return slot, true
}

// Slots returns a copy of every committed slot in ascending time.
func (s *Store) Slots() []model.DeliverySlot {
	s.mu.Lock()
	out := make([]model.DeliverySlot, 0, s.size)
	for _, g := range s.days {
		for _, slot := range g.slots {
			if slot != nil {
				out = append(out, *slot)
			}
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Begin.Before(out[j].Begin) })
	return out
}

// Restore commits previously saved slots, typically read from a snapshot.
// The green flag is recomputed from the store's policy. It returns how many
// were stored; slots that do not fit, including a second slot for the same
// product, are reported through ErrSlotRejected.
func (s *Store) Restore(slots []model.DeliverySlot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, slot := range slots {
		slot.Green = s.policy != nil && s.policy.IsGreen(slot.Begin.In(s.loc))
		if s.commitLocked(slot) {
			n++
		}
	}
	if n != len(slots) {
		return n, fmt.Errorf("%w: %d of %d", ErrSlotRejected, len(slots)-n, len(slots))
	}
	return n, nil
}

func (s *Store) startOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *Store) hourOf(day time.Time, hour int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, s.loc)
}
