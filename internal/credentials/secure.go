package credentials

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"qc/internal/models"
)

// SecureStore caches the credential record of one identifier. The record is
// loaded from the backend on first access and every mutation is written
// through before returning. It is not safe for concurrent use.
type SecureStore struct {
	id      string
	backend Backend
	logger  *zap.Logger

	loaded bool
	values map[string]string
	// loadErr is set when the backend could not be read. Writes are refused
	// until Clear so a partial record never replaces the stored one.
	loadErr error
}

func NewSecureStore(id string, backend Backend, logger *zap.Logger) *SecureStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecureStore{
		id:      id,
		backend: backend,
		logger:  logger.Named("store"),
	}
}

func (s *SecureStore) Get(key string) (string, bool) {
	s.ensureLoaded()
	v, ok := s.values[key]
	return v, ok
}

// Set upserts key, or removes it when value is nil, then persists the whole record.
func (s *SecureStore) Set(key string, value *string) error {
	return s.SetAll(map[string]*string{key: value})
}

// SetAll applies every update to the record and persists it with one backend
// write. Either all updates are stored or none are.
func (s *SecureStore) SetAll(updates map[string]*string) error {
	s.ensureLoaded()
	if s.loadErr != nil {
		// writing now would drop the fields that could not be read
		return fmt.Errorf("stored record could not be read: %w", s.loadErr)
	}
	next := make(map[string]string, len(s.values)+len(updates))
	for k, v := range s.values {
		next[k] = v
	}
	for k, v := range updates {
		if v != nil {
			next[k] = *v
		} else {
			delete(next, k)
		}
	}
	blob, err := encodeRecord(next)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.backend.Save(s.id, blob); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	s.values = next
	for k, v := range updates {
		s.logger.Debug("record saved", zap.String("key", k), zap.Bool("removed", v == nil))
	}
	return nil
}

// Clear deletes the persisted record and empties the cache.
func (s *SecureStore) Clear() error {
	if err := s.backend.Delete(s.id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.values = map[string]string{}
	s.loaded = true
	s.loadErr = nil
	s.logger.Debug("record cleared", zap.String("identifier", s.id))
	return nil
}

// Available reports whether the backend can be used right now.
func (s *SecureStore) Available() error {
	ok, err := s.backend.Available()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !ok {
		return ErrUnavailable
	}
	return nil
}

func (s *SecureStore) Password() (string, bool) { return s.Get(models.KeyPassword) }

func (s *SecureStore) SetPassword(v *string) error { return s.Set(models.KeyPassword, v) }

func (s *SecureStore) Network() (string, bool) { return s.Get(models.KeyNetwork) }

func (s *SecureStore) SetNetwork(v *string) error { return s.Set(models.KeyNetwork, v) }

func (s *SecureStore) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.values = map[string]string{}
	blob, err := s.backend.Load(s.id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.loadErr = err
			s.logger.Warn("load record failed", zap.String("identifier", s.id), zap.Error(err))
		}
		return
	}
	values, err := decodeRecord(blob)
	if err != nil {
		s.logger.Warn("stored record is unreadable, starting empty", zap.String("identifier", s.id), zap.Error(err))
		return
	}
	s.values = values
}

func encodeRecord(values map[string]string) ([]byte, error) {
	return yaml.Marshal(values)
}

func decodeRecord(blob []byte) (map[string]string, error) {
	values := map[string]string{}
	if err := yaml.Unmarshal(blob, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}
