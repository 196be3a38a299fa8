// Package store provides the small key-value persistence collaborator the
// reading-position bridge talks to: bounded ASCII keys mapped to 32-bit
// values, with file, Redis and in-memory backends.
package store

// KV stores reading positions. Get reports ok=false for absent keys; an
// absent key is normal, not an error. Implementations are used from a
// single goroutine.
type KV interface {
	Set(key string, value int32) error
	Get(key string) (int32, bool, error)
	Close() error
}
