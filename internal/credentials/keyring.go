package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const serviceName = "com.qc.vpn"

type KeyringBackend struct {
	Service string
}

func NewKeyringBackend() *KeyringBackend {
	return &KeyringBackend{Service: serviceName}
}

func (b *KeyringBackend) Save(id string, blob []byte) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("store identifier is required")
	}
	// go-keyring replaces an existing item, no delete-then-add needed.
	if err := keyring.Set(b.service(), id, string(blob)); err != nil {
		return fmt.Errorf("keyring: save %q: %w", id, err)
	}
	return nil
}

func (b *KeyringBackend) Load(id string) ([]byte, error) {
	value, err := keyring.Get(b.service(), strings.TrimSpace(id))
	if err == nil {
		return []byte(value), nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotFound
	}
	return nil, fmt.Errorf("keyring: load %q: %w", id, err)
}

func (b *KeyringBackend) Delete(id string) error {
	err := keyring.Delete(b.service(), strings.TrimSpace(id))
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("keyring: delete %q: %w", id, err)
}

func (b *KeyringBackend) Available() (bool, error) {
	_, err := keyring.Get(b.service(), "__qc_probe__")
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return true, nil
	}
	return false, err
}

func (b *KeyringBackend) service() string {
	if strings.TrimSpace(b.Service) != "" {
		return b.Service
	}
	return serviceName
}
