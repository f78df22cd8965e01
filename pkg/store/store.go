package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by ReadOne, Update and Delete when no record with
// the given id exists in the table.
var ErrNotFound = errors.New("store: record not found")

// Record is a single document as stored. The generated id is carried under
// the "id" key when records are read back.
type Record map[string]any

type Op string

const (
	OpEqual          Op = "=="
	OpGreater        Op = ">"
	OpGreaterOrEqual Op = ">="
	OpLess           Op = "<"
	OpLessOrEqual    Op = "<="
	OpArrayContains  Op = "array-contains"
)

// Filter is a single field predicate. Filters passed together to ReadAll are
// combined with AND semantics.
type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// Store is the portal's only contract with the document database. Every
// domain repository is built on these operations so the persistence
// technology can be swapped (Mongo in production, memstore in tests).
type Store interface {
	ReadOne(ctx context.Context, table, id string) (Record, error)
	ReadAll(ctx context.Context, table string, filters []Filter) ([]Record, error)
	Create(ctx context.Context, table string, payload Record) (string, error)
	Update(ctx context.Context, table, id string, partial Record) error
	Upsert(ctx context.Context, table, id string, payload Record) error
	Delete(ctx context.Context, table, id string) error
}

// Decode maps a record onto a struct with json tags.
func Decode(rec Record, out any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// ToRecord converts a struct with json tags into a Record.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	delete(rec, "id")
	return rec, nil
}

// DecodeAll maps a slice of records onto a slice of structs with json tags.
func DecodeAll[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var item T
		if err := Decode(rec, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
