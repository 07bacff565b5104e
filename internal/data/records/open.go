package records

import "fmt"

// Backend names accepted by Open
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the store for backend. path is ignored for the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSONL:
		return NewJSONLStore(path)
	case BackendSQLite:
		return OpenSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
