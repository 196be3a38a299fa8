package store

// Memory is a map-backed KV for tests and as a sink when no durable store
// is configured.
type Memory struct {
	values map[string]int32
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]int32)}
}

func (m *Memory) Set(key string, value int32) error {
	m.values[key] = value
	return nil
}

func (m *Memory) Get(key string) (int32, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Close() error { return nil }
