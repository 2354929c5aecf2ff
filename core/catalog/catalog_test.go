package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/greenslot/core/model"
)

const sample = `products:
  - name: bread
  - name: imported cheese
    type: external
    days_in_advance: 6
  - name: seasonal flowers
    type: TEMPORARY
    delivery_days: [mon, tue, wed]
  - name: never
    delivery_days: []
`

func TestDecodeYAML(t *testing.T) {
	products, err := Decode(bytes.NewBufferString(sample), "yaml")
	require.NoError(t, err)
	require.Len(t, products, 4)

	bread := products[0]
	assert.Equal(t, model.ProductNormal, bread.Type())
	assert.Equal(t, model.AllWeek, bread.DeliveryDays())
	assert.Equal(t, model.ProductID("bread"), bread.ID())

	cheese := products[1]
	assert.Equal(t, model.ProductExternal, cheese.Type())
	assert.Equal(t, 6, cheese.DaysInAdvance())
	assert.True(t, cheese.IsValid())

	flowers := products[2]
	assert.Equal(t, model.ProductTemporary, flowers.Type())
	assert.Equal(t, model.NewWeekdays(time.Monday, time.Tuesday, time.Wednesday), flowers.DeliveryDays())

	assert.Equal(t, model.Weekdays(0), products[3].DeliveryDays(), "explicit empty list means no day")
}

func TestDecodeJSON(t *testing.T) {
	data := `{"products":[{"name":"milk","delivery_days":"sat,sun"},{"name":"crate","type":"external","days_in_advance":2}]}`
	products, err := Decode(bytes.NewBufferString(data), "json")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, model.Weekend, products[0].DeliveryDays())
	assert.False(t, products[1].IsValid(), "loading keeps invalid products for the validator")
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name, format, data string
		target             error
	}{
		{"missing name", "yaml", "products:\n  - type: normal\n", ErrMissingName},
		{"bad type", "yaml", "products:\n  - name: x\n    type: fragile\n", model.ErrUnknownProductType},
		{"bad day", "json", `{"products":[{"name":"x","delivery_days":["funday"]}]}`, model.ErrUnknownWeekday},
		{"negative lead", "yaml", "products:\n  - name: x\n    days_in_advance: -1\n", model.ErrInvalidDaysInAdvance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewBufferString(tc.data), tc.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}

	_, err := Decode(bytes.NewBufferString(`{"products":[],"extra":1}`), "json")
	assert.Error(t, err, "unknown fields are rejected")
	_, err = Decode(bytes.NewBufferString(""), "toml")
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	products, err := Decode(bytes.NewBufferString(""), "yaml")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	products, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, products, 4)

	bad := filepath.Join(dir, "products.txt")
	require.NoError(t, os.WriteFile(bad, []byte(sample), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
