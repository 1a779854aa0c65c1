package repo

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tokenlore/storyd/pkg/logger"
)

// NewMemory returns an in-process Repo with the same filter semantics as
// the mongo one. Used for development runs and tests.
func NewMemory[T any](log logger.Logger) Repo[T] {
	return &memoryRepo[T]{
		docs: make(map[string]T),
		log:  log.With("memory_repo"),
	}
}

type memoryRepo[T any] struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]T
	log   logger.Logger
}

func (m *memoryRepo[T]) Insert(_ context.Context, data T) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.docs[id] = data
	m.order = append(m.order, id)
	return id, nil
}

func (m *memoryRepo[T]) Select(_ context.Context, filters ...Filter) ([]T, error) {
	f := buildFilter(filters)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var selected []T
	for _, id := range m.order {
		if f.id != nil && *f.id != id {
			continue
		}

		doc := m.docs[id]
		if !matchFields(doc, f.fields) {
			continue
		}
		if f.fn != nil && !f.fn(doc) {
			continue
		}

		selected = append(selected, doc)
	}

	return selected, nil
}

func (m *memoryRepo[T]) Update(_ context.Context, update func(*T), filters ...Filter) error {
	f := buildFilter(filters)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		if f.id != nil && *f.id != id {
			continue
		}

		doc := m.docs[id]
		if !matchFields(doc, f.fields) {
			continue
		}
		if f.fn != nil && !f.fn(doc) {
			continue
		}

		update(&doc)
		m.docs[id] = doc
	}

	return nil
}

func (m *memoryRepo[T]) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return false, nil
	}

	delete(m.docs, id)
	for i := range m.order {
		if m.order[i] == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *memoryRepo[T]) Close(context.Context) error {
	return nil
}

// matchFields compares wanted values against struct fields addressed by
// their bson names, so ByField works identically for both backends.
func matchFields(doc any, fields map[string]any) bool {
	if len(fields) == 0 {
		return true
	}

	v := reflect.ValueOf(doc)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}

	t := v.Type()
	for name, want := range fields {
		matched := false
		for i := 0; i < t.NumField(); i++ {
			if bsonName(t.Field(i)) != name {
				continue
			}
			matched = reflect.DeepEqual(v.Field(i).Interface(), want)
			break
		}
		if !matched {
			return false
		}
	}

	return true
}

func bsonName(f reflect.StructField) string {
	tag := f.Tag.Get("bson")
	if comma := strings.IndexByte(tag, ','); comma >= 0 {
		tag = tag[:comma]
	}
	if tag == "" {
		tag = strings.ToLower(f.Name)
	}
	return tag
}
