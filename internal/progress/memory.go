package progress

// MemoryStore is an in-memory Store with the same version-gate semantics as
// the sqlite store. It backs ephemeral runs and tests.
type MemoryStore struct {
	versioned
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	m := &MemoryStore{data: make(map[string]string)}
	m.versioned = versioned{kv: m}
	return m
}

func (m *MemoryStore) get(key string) (string, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryStore) put(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MemoryStore) del(key string) error {
	delete(m.data, key)
	return nil
}
