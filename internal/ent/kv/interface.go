package kv

// KeyVal is a key-value store.
type KeyVal interface {
	// Open opens a key-value store.
	Open() error

	// Close closes a key-value store.
	Close() error

	// GetValue returns the value of a key, or nil if the key is unknown.
	GetValue(key []byte) ([]byte, error)

	// SetValue stores a key-value pair.
	SetValue(key, val []byte) error
}
