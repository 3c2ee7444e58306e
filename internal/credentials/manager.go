package credentials

import (
	"fmt"

	"qc/internal/models"
)

// NewBackend returns the backend configured by kind. An empty kind means keyring.
func NewBackend(kind models.BackendType) (Backend, error) {
	switch kind {
	case models.BackendKeyring, "":
		return NewKeyringBackend(), nil
	case models.BackendEnv:
		return NewEnvBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, kind)
	}
}
