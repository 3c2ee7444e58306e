package credentials

import (
	"os"
	"strings"

	"qc/internal/models"
)

const (
	EnvPassword = "QC_PASSWORD"
	EnvNetwork  = "QC_NETWORK"
)

// EnvBackend serves a read-only record built from QC_PASSWORD and QC_NETWORK.
// The identifier is ignored.
type EnvBackend struct{}

func NewEnvBackend() *EnvBackend {
	return &EnvBackend{}
}

func (b *EnvBackend) Load(string) ([]byte, error) {
	record := map[string]string{}
	if v := os.Getenv(EnvPassword); v != "" {
		record[models.KeyPassword] = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvNetwork)); v != "" {
		record[models.KeyNetwork] = v
	}
	if len(record) == 0 {
		return nil, ErrNotFound
	}
	return encodeRecord(record)
}

func (b *EnvBackend) Save(string, []byte) error {
	return ErrReadOnly
}

func (b *EnvBackend) Delete(string) error {
	return ErrReadOnly
}

func (b *EnvBackend) Available() (bool, error) {
	return true, nil
}
