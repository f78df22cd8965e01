package memstore

import (
	"context"
	"errors"
	"testing"

	"condohub/pkg/store"
)

func TestCreateAndReadOne(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Create(ctx, "bookings", store.Record{"user_id": "u1", "date": "2026-09-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	rec, err := s.ReadOne(ctx, "bookings", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["user_id"] != "u1" {
		t.Errorf("expected user_id u1, got %v", rec["user_id"])
	}
	if rec["id"] != id {
		t.Errorf("expected id %s on read, got %v", id, rec["id"])
	}
}

func TestReadOne_NotFound(t *testing.T) {
	s := New()

	_, err := s.ReadOne(context.Background(), "bookings", "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadAll_Filters(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, _ = s.Create(ctx, "bookings", store.Record{"condominium_id": "c1", "date": "2026-09-01"})
	_, _ = s.Create(ctx, "bookings", store.Record{"condominium_id": "c1", "date": "2026-09-10"})
	_, _ = s.Create(ctx, "bookings", store.Record{"condominium_id": "c2", "date": "2026-09-10"})

	tests := []struct {
		name    string
		filters []store.Filter
		want    int
	}{
		{"equality", []store.Filter{store.Eq("condominium_id", "c1")}, 2},
		{"range on date string", []store.Filter{store.Where("date", store.OpGreaterOrEqual, "2026-09-05")}, 2},
		{"combined", []store.Filter{
			store.Eq("condominium_id", "c1"),
			store.Where("date", store.OpGreaterOrEqual, "2026-09-05"),
		}, 1},
		{"no match", []store.Filter{store.Eq("condominium_id", "c9")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.ReadAll(ctx, "bookings", tt.filters)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("expected %d records, got %d", tt.want, len(records))
			}
		})
	}
}

func TestReadAll_ArrayContains(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, _ = s.Create(ctx, "events", store.Record{"resource_ids": []string{"r1", "r2"}})
	_, _ = s.Create(ctx, "events", store.Record{"resource_ids": []any{"r3"}})

	records, err := s.ReadAll(ctx, "events", []store.Filter{
		store.Where("resource_ids", store.OpArrayContains, "r2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	records, err = s.ReadAll(ctx, "events", []store.Filter{
		store.Where("resource_ids", store.OpArrayContains, "r3"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record for []any field, got %d", len(records))
	}
}

func TestUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, _ := s.Create(ctx, "polls", store.Record{"title": "old", "is_active": true})

	if err := s.Update(ctx, "polls", id, store.Record{"is_active": false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, _ := s.ReadOne(ctx, "polls", id)
	if rec["is_active"] != false {
		t.Errorf("expected is_active false, got %v", rec["is_active"])
	}
	if rec["title"] != "old" {
		t.Errorf("expected untouched fields to survive a partial update, got %v", rec["title"])
	}

	if err := s.Update(ctx, "polls", "missing", store.Record{"x": 1}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestUpsert(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Upsert(ctx, "condominiums", "uid-1", store.Record{"name": "Condomínio Sol"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Upsert(ctx, "condominiums", "uid-1", store.Record{"name": "Condomínio Sol Nascente"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := s.ReadOne(ctx, "condominiums", "uid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["name"] != "Condomínio Sol Nascente" {
		t.Errorf("expected upsert to overwrite, got %v", rec["name"])
	}
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, _ := s.Create(ctx, "events", store.Record{"status": "closed"})
	if err := s.Delete(ctx, "events", id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ReadOne(ctx, "events", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
