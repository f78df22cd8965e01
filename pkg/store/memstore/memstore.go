package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"condohub/pkg/store"

	"github.com/google/uuid"
)

// Store is an in-memory store.Store used by unit tests. It applies the same
// filter semantics as the Mongo implementation, over plain maps.
type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string]store.Record
}

func New() *Store {
	return &Store{
		tables: map[string]map[string]store.Record{},
	}
}

func (s *Store) ReadOne(_ context.Context, table, id string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.tables[table][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return withID(rec, id), nil
}

func (s *Store) ReadAll(_ context.Context, table string, filters []store.Filter) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tables[table]))
	for id := range s.tables[table] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []store.Record
	for _, id := range ids {
		rec := s.tables[table][id]
		if matchesAll(rec, filters) {
			results = append(results, withID(rec, id))
		}
	}
	return results, nil
}

func (s *Store) Create(_ context.Context, table string, payload store.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.put(table, id, payload)
	return id, nil
}

func (s *Store) Update(_ context.Context, table, id string, partial store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tables[table][id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range partial {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	return nil
}

func (s *Store) Upsert(_ context.Context, table, id string, payload store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.tables[table][id]; ok {
		for k, v := range payload {
			if k == "id" {
				continue
			}
			rec[k] = v
		}
		return nil
	}
	s.put(table, id, payload)
	return nil
}

func (s *Store) Delete(_ context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[table][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.tables[table], id)
	return nil
}

func (s *Store) put(table, id string, payload store.Record) {
	if s.tables[table] == nil {
		s.tables[table] = map[string]store.Record{}
	}
	rec := store.Record{}
	for k, v := range payload {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	s.tables[table][id] = rec
}

func withID(rec store.Record, id string) store.Record {
	out := store.Record{"id": id}
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func matchesAll(rec store.Record, filters []store.Filter) bool {
	for _, f := range filters {
		if !matches(rec, f) {
			return false
		}
	}
	return true
}

func matches(rec store.Record, f store.Filter) bool {
	value, ok := rec[f.Field]
	if !ok {
		return false
	}

	switch f.Op {
	case store.OpEqual:
		return compare(value, f.Value) == 0
	case store.OpGreater:
		return compare(value, f.Value) > 0
	case store.OpGreaterOrEqual:
		return compare(value, f.Value) >= 0
	case store.OpLess:
		return compare(value, f.Value) < 0
	case store.OpLessOrEqual:
		return compare(value, f.Value) <= 0
	case store.OpArrayContains:
		return contains(value, f.Value)
	default:
		return false
	}
}

// compare orders strings lexicographically (dates and times are stored as
// ISO strings, so this matches the document database's ordering) and
// numbers numerically.
func compare(a, b any) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	if a == b {
		return 0
	}
	return -1
}

func toFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case float32:
		return float64(value), true
	case float64:
		return value, true
	default:
		return 0, false
	}
}

func contains(field, target any) bool {
	switch items := field.(type) {
	case []string:
		for _, item := range items {
			if compare(item, target) == 0 {
				return true
			}
		}
	case []any:
		for _, item := range items {
			if compare(item, target) == 0 {
				return true
			}
		}
	}
	return false
}
