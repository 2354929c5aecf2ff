package snapshot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/snapshot"
)

// JSONLStore stores one slot per line in a JSONL file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Save writes the slots to a temporary file and renames it over the store.
func (s *JSONLStore) Save(ctx context.Context, slots []model.DeliverySlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, slot := range slots {
		if err := ctx.Err(); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := enc.Encode(slot); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *JSONLStore) Load(ctx context.Context, q snapshot.Query) ([]model.DeliverySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []model.DeliverySlot
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var slot model.DeliverySlot
		if err := json.Unmarshal(scanner.Bytes(), &slot); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", s.path, line, err)
		}
		if q.Match(slot) {
			res = append(res, slot)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Begin.Before(res[j].Begin) })
	return res, ctx.Err()
}

func (s *JSONLStore) Close() error { return nil }
