package mapkv

import "errors"

var (
	ErrNilProvider = errors.New("mapkv: provider is required")
	ErrNilCodec    = errors.New("mapkv: codec is required unless PassthroughValues is set")
	// ErrValueType is returned when a stored value cannot be turned back into V.
	ErrValueType = errors.New("mapkv: stored value has unexpected type")
)

// StorageError ties a background failure to the storage key involved. The
// façade emits it as an events.Error payload when a self-heal delete fails.
// Error omits the key so sinks can redact it via StorageKey.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string      { return "mapkv: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error      { return e.Err }
func (e *StorageError) StorageKey() string { return e.Key }
