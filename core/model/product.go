package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidDaysInAdvance is returned when a negative lead time is requested.
var ErrInvalidDaysInAdvance = errors.New("days in advance must not be negative")

// MinExternalLeadDays is the lead time external suppliers need.
const MinExternalLeadDays = 5

// ProductNamespace scopes name-based product identifiers.
var ProductNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("products.greenslot"))

// Product is an item that must be assigned a delivery slot. A Product is
// immutable once built by NewProduct or NewProductWithConstraints.
type Product struct {
	id            uuid.UUID
	name          string
	productType   ProductType
	deliveryDays  Weekdays
	daysInAdvance int
}

// ProductID derives the identifier of a product from its name. The same
// name always yields the same identifier.
func ProductID(name string) uuid.UUID {
	return uuid.NewMD5(ProductNamespace, []byte(name))
}

// NewProduct returns a NORMAL product deliverable every day with no lead time.
func NewProduct(name string) Product {
	return Product{
		id:           ProductID(name),
		name:         name,
		productType:  ProductNormal,
		deliveryDays: AllWeek,
	}
}

// NewProductWithConstraints returns a product with explicit constraints.
func NewProductWithConstraints(name string, t ProductType, days Weekdays, daysInAdvance int) (Product, error) {
	if !t.Known() {
		return Product{}, fmt.Errorf("%w: %d", ErrUnknownProductType, int(t))
	}
	if daysInAdvance < 0 {
		return Product{}, fmt.Errorf("%w: %d", ErrInvalidDaysInAdvance, daysInAdvance)
	}
	return Product{
		id:            ProductID(name),
		name:          name,
		productType:   t,
		deliveryDays:  days & AllWeek,
		daysInAdvance: daysInAdvance,
	}, nil
}

func (p Product) ID() uuid.UUID          { return p.id }
func (p Product) Name() string           { return p.name }
func (p Product) Type() ProductType      { return p.productType }
func (p Product) DeliveryDays() Weekdays { return p.deliveryDays }
func (p Product) DaysInAdvance() int     { return p.daysInAdvance }

// DeliverableOn reports whether the product may be delivered on weekday d.
func (p Product) DeliverableOn(d time.Weekday) bool {
	return p.deliveryDays.Has(d)
}

// IsValid reports whether the declared constraints of the product are
// consistent enough for it to be scheduled at all.
func (p Product) IsValid() bool {
	return p.InvalidReason() == ""
}

// InvalidReason explains why IsValid is false. It is empty for valid products.
func (p Product) InvalidReason() string {
	switch p.productType {
	case ProductNormal:
		return ""
	case ProductExternal:
		if p.daysInAdvance < MinExternalLeadDays {
			return fmt.Sprintf("external products need at least %d days in advance", MinExternalLeadDays)
		}
		return ""
	case ProductTemporary:
		if p.deliveryDays.Intersects(Weekend) {
			return "temporary products cannot be delivered on weekends"
		}
		return ""
	default:
		return "unknown product type"
	}
}

func (p Product) String() string {
	return fmt.Sprintf("%s(%s)", p.name, p.productType)
}
