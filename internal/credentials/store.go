package credentials

import "fmt"

var (
	ErrUnsupportedBackend = fmt.Errorf("unsupported credential backend")
	ErrNotFound           = fmt.Errorf("credential not found")
	ErrReadOnly           = fmt.Errorf("credential backend is read-only")
	ErrUnavailable        = fmt.Errorf("credential backend is unavailable")
)

// Backend persists one opaque blob per store identifier.
type Backend interface {
	Save(id string, blob []byte) error
	// Load returns ErrNotFound when nothing is stored under id.
	Load(id string) ([]byte, error)
	// Delete is a no-op when nothing is stored under id.
	Delete(id string) error
	Available() (bool, error)
}
