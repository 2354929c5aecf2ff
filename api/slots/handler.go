// Package slots exposes committed delivery slots over HTTP.
package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/snapshot"
)

// Source returns persisted slots.
type Source interface {
	Slots(ctx context.Context, q snapshot.Query) ([]model.DeliverySlot, error)
}

// NewHandler returns an HTTP handler exposing slots via GET /api/slots.
// Requests must include an Authorization header with "Bearer <token>" when
// token is non-empty. Supported query parameters are start and end (RFC3339)
// and product (product name).
func NewHandler(src Source, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slots, err := src.Slots(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if slots == nil {
			slots = []model.DeliverySlot{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(slots); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseQuery(r *http.Request) (snapshot.Query, error) {
	var q snapshot.Query
	values := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"start", &q.Start}, {"end", &q.End}} {
		s := values.Get(p.name)
		if s == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("%s: want RFC3339 timestamp", p.name)
		}
		*p.dst = t
	}
	if name := values.Get("product"); name != "" {
		q.ProductID = model.ProductID(name)
	}
	return q, nil
}
