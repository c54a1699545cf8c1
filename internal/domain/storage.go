package domain

// KeyValueStore is the durable key-value storage the favorites collection is
// mirrored to. Values are opaque bytes; Get reports false for a missing key
// and an error only when the backing storage could not be read.
type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
