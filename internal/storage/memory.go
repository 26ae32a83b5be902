package storage

import "fmt"

// MemoryStore is a Storer over records defined in code. Keys are returned in
// insertion order.
type MemoryStore[T ValidatingSpec] struct {
	keys    []string
	records map[string]T
}

func NewMemoryStore[T ValidatingSpec]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]T{}}
}

// Add validates and stores a record under id.
func (s *MemoryStore[T]) Add(id string, v T) error {
	asset := &Asset[T]{Version: 1, Identifier: Identifier(id), Spec: v}
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}
	if _, ok := s.records[id]; ok {
		return fmt.Errorf("duplicate key detected: %s", id)
	}

	s.keys = append(s.keys, id)
	s.records[id] = v
	return nil
}

func (s *MemoryStore[T]) Get(id string) T {
	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

func (s *MemoryStore[T]) Keys() []string {
	return append([]string{}, s.keys...)
}
