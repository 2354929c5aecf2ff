// Package catalog reads product definitions from YAML or JSON files.
//
// A catalog file holds a list of products under the "products" key:
//
//	products:
//	  - name: bread
//	  - name: imported cheese
//	    type: external
//	    days_in_advance: 6
//	  - name: seasonal flowers
//	    type: temporary
//	    delivery_days: [mon, tue, wed]
//
// Missing type defaults to NORMAL and missing delivery_days to the whole week.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/greenslot/core/model"
)

// ErrMissingName is returned for an entry without a product name.
var ErrMissingName = errors.New("product name is required")

// Entry is the file representation of one product.
type Entry struct {
	Name          string            `json:"name" yaml:"name"`
	Type          model.ProductType `json:"type" yaml:"type"`
	DeliveryDays  *model.Weekdays   `json:"delivery_days,omitempty" yaml:"delivery_days,omitempty"`
	DaysInAdvance int               `json:"days_in_advance" yaml:"days_in_advance"`
}

// Product builds the domain product described by the entry.
func (e Entry) Product() (model.Product, error) {
	if strings.TrimSpace(e.Name) == "" {
		return model.Product{}, ErrMissingName
	}
	days := model.AllWeek
	if e.DeliveryDays != nil {
		days = *e.DeliveryDays
	}
	return model.NewProductWithConstraints(e.Name, e.Type, days, e.DaysInAdvance)
}

type file struct {
	Products []Entry `json:"products" yaml:"products"`
}

// Load reads the catalog at path. The format follows the file extension.
func Load(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yaml", "yml", "json":
	default:
		return nil, fmt.Errorf("unsupported catalog format: .%s", ext)
	}
	return Decode(f, ext)
}

// Decode reads a catalog in the given format ("yaml" or "json") and returns
// the products in file order.
func Decode(r io.Reader, format string) ([]model.Product, error) {
	var doc file
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	products := make([]model.Product, 0, len(doc.Products))
	for i, e := range doc.Products {
		p, err := e.Product()
		if err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, e.Name, err)
		}
		products = append(products, p)
	}
	return products, nil
}
