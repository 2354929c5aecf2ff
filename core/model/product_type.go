package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProductType is returned when a product type name cannot be parsed.
var ErrUnknownProductType = errors.New("unknown product type")

// ProductType defines how a product is sourced.
type ProductType int

const (
	ProductNormal ProductType = iota
	ProductExternal
	ProductTemporary
)

// String returns the canonical upper-case name of the product type.
func (t ProductType) String() string {
	switch t {
	case ProductNormal:
		return "NORMAL"
	case ProductExternal:
		return "EXTERNAL"
	case ProductTemporary:
		return "TEMPORARY"
	default:
		return "unknown"
	}
}

// Known reports whether t is one of the declared product types.
func (t ProductType) Known() bool {
	return t >= ProductNormal && t <= ProductTemporary
}

// ParseProductType parses a product type name, ignoring case.
// An empty name maps to ProductNormal.
func ParseProductType(s string) (ProductType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NORMAL":
		return ProductNormal, nil
	case "EXTERNAL":
		return ProductExternal, nil
	case "TEMPORARY":
		return ProductTemporary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProductType, s)
	}
}

func (t ProductType) MarshalText() ([]byte, error) {
	if !t.Known() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProductType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *ProductType) UnmarshalText(b []byte) error {
	v, err := ParseProductType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
