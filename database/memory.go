package database

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore keeps bson-encoded documents in process. It backs the tests
// and STORE_DRIVER=memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string][]byte)}
}

func rawDocument(id string, raw []byte) Document {
	return Document{ID: id, decode: func(v interface{}) error {
		return bson.Unmarshal(raw, v)
	}}
}

func (m *MemoryStore) List(_ context.Context, ref Ref, filters ...Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col := m.docs[ref.Path()]
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		raw := col[id]
		if len(filters) > 0 {
			var fields bson.M
			if err := bson.Unmarshal(raw, &fields); err != nil {
				return nil, err
			}
			if !matches(fields, filters) {
				continue
			}
		}
		out = append(out, rawDocument(id, raw))
	}
	return out, nil
}

func matches(fields bson.M, filters []Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field].(string)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}

func (m *MemoryStore) Get(_ context.Context, ref Ref, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.docs[ref.Path()][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return rawDocument(id, raw), nil
}

func (m *MemoryStore) Set(_ context.Context, ref Ref, id string, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.docs[ref.Path()]
	if !ok {
		col = make(map[string][]byte)
		m.docs[ref.Path()] = col
	}
	col[id] = raw
	return nil
}

func (m *MemoryStore) Update(_ context.Context, ref Ref, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.docs[ref.Path()][id]
	if !ok {
		return ErrNotFound
	}
	var current bson.M
	if err := bson.Unmarshal(raw, &current); err != nil {
		return err
	}
	for k, v := range fields {
		current[k] = v
	}
	merged, err := bson.Marshal(current)
	if err != nil {
		return err
	}
	m.docs[ref.Path()][id] = merged
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, ref Ref, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[ref.Path()][id]; !ok {
		return ErrNotFound
	}
	delete(m.docs[ref.Path()], id)
	return nil
}

func (m *MemoryStore) Close(context.Context) error { return nil }
