package credentials

import "sync"

// MemoryBackend keeps blobs in process memory. Tests use it in place of the keyring.
type MemoryBackend struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// LoadErr, SaveErr and DeleteErr, when set, are returned instead of performing the call.
	LoadErr   error
	SaveErr   error
	DeleteErr error
	// AvailableErr makes Available report the backend as unusable.
	AvailableErr error

	Saves   int
	Loads   int
	Deletes int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: map[string][]byte{}}
}

func (b *MemoryBackend) Save(id string, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Saves++
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.blobs[id] = append([]byte(nil), blob...)
	return nil
}

func (b *MemoryBackend) Load(id string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Loads++
	if b.LoadErr != nil {
		return nil, b.LoadErr
	}
	blob, ok := b.blobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (b *MemoryBackend) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Deletes++
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	delete(b.blobs, id)
	return nil
}

func (b *MemoryBackend) Available() (bool, error) {
	if b.AvailableErr != nil {
		return false, b.AvailableErr
	}
	return true, nil
}

// Blob returns the raw stored bytes for id.
func (b *MemoryBackend) Blob(id string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	blob, ok := b.blobs[id]
	return blob, ok
}
