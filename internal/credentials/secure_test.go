package credentials

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"qc/internal/models"
)

func strPtr(s string) *string { return &s }

func TestSecureStoreRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSecureStore("qc", backend, nil)

	if err := store.Set(models.KeyPassword, strPtr("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, ok := store.Get(models.KeyPassword); !ok || got != "x" {
		t.Fatalf("expected x, got %q (present=%v)", got, ok)
	}
	if err := store.Set(models.KeyPassword, nil); err != nil {
		t.Fatalf("Set nil: %v", err)
	}
	if _, ok := store.Get(models.KeyPassword); ok {
		t.Fatalf("expected password to be removed")
	}
}

func TestSecureStoreLazyLoadReadsOnce(t *testing.T) {
	backend := NewMemoryBackend()
	seed := NewSecureStore("qc", backend, nil)
	if err := seed.SetNetwork(strPtr("corp")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loadsBefore := backend.Loads

	store := NewSecureStore("qc", backend, nil)
	if backend.Loads != loadsBefore {
		t.Fatalf("constructor must not touch the backend")
	}
	for i := 0; i < 3; i++ {
		if got, _ := store.Network(); got != "corp" {
			t.Fatalf("expected corp, got %q", got)
		}
	}
	if backend.Loads != loadsBefore+1 {
		t.Fatalf("expected exactly one load, got %d", backend.Loads-loadsBefore)
	}

	// later external writes are not observed
	other := NewSecureStore("qc", backend, nil)
	if err := other.SetNetwork(strPtr("lab")); err != nil {
		t.Fatalf("other: %v", err)
	}
	if got, _ := store.Network(); got != "corp" {
		t.Fatalf("expected cached corp, got %q", got)
	}
}

func TestSecureStoreWriteThrough(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSecureStore("qc", backend, nil)
	if err := store.SetPassword(strPtr("secret")); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := store.SetNetwork(strPtr("corp")); err != nil {
		t.Fatalf("SetNetwork: %v", err)
	}
	if backend.Saves != 2 {
		t.Fatalf("expected one save per Set, got %d", backend.Saves)
	}
	blob, ok := backend.Blob("qc")
	if !ok {
		t.Fatalf("expected blob to be persisted")
	}
	got, err := decodeRecord(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{models.KeyPassword: "secret", models.KeyNetwork: "corp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted record mismatch (-want +got):\n%s", diff)
	}
}

func TestSecureStoreSaveFailureKeepsCache(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSecureStore("qc", backend, nil)
	if err := store.SetPassword(strPtr("old")); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	denied := errors.New("storage denied")
	backend.SaveErr = denied
	err := store.SetPassword(strPtr("new"))
	if !errors.Is(err, denied) {
		t.Fatalf("expected storage denied, got %v", err)
	}
	if got, _ := store.Password(); got != "old" {
		t.Fatalf("expected cache to keep old value, got %q", got)
	}
}

func TestSecureStoreClear(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSecureStore("qc", backend, nil)
	_ = store.SetPassword(strPtr("secret"))
	_ = store.SetNetwork(strPtr("corp"))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, key := range []string{models.KeyPassword, models.KeyNetwork} {
		if _, ok := store.Get(key); ok {
			t.Fatalf("expected %s to be cleared", key)
		}
	}
	if _, ok := backend.Blob("qc"); ok {
		t.Fatalf("expected backend entry to be deleted")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear should be a no-op, got %v", err)
	}
	if backend.Deletes != 2 {
		t.Fatalf("expected one delete per Clear, got %d", backend.Deletes)
	}
}

func TestSecureStoreIgnoresCorruptBlob(t *testing.T) {
	backend := NewMemoryBackend()
	_ = backend.Save("qc", []byte("password: [unterminated"))
	store := NewSecureStore("qc", backend, nil)
	if _, ok := store.Password(); ok {
		t.Fatalf("expected empty record for corrupt blob")
	}
	if err := store.SetNetwork(strPtr("corp")); err != nil {
		t.Fatalf("SetNetwork after corrupt load: %v", err)
	}
}

func TestSecureStoreRefusesWriteAfterFailedLoad(t *testing.T) {
	backend := NewMemoryBackend()
	seed := NewSecureStore("qc", backend, nil)
	if err := seed.SetAll(map[string]*string{
		models.KeyPassword: strPtr("secret"),
		models.KeyNetwork:  strPtr("corp"),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	denied := errors.New("user denied keychain access")
	backend.LoadErr = denied
	store := NewSecureStore("qc", backend, nil)
	if _, ok := store.Network(); ok {
		t.Fatalf("expected fields to read as absent after a failed load")
	}
	saves := backend.Saves
	if err := store.SetNetwork(strPtr("lab")); !errors.Is(err, denied) {
		t.Fatalf("expected load error from SetNetwork, got %v", err)
	}
	if backend.Saves != saves {
		t.Fatalf("store wrote a partial record after a failed load")
	}

	backend.LoadErr = nil
	got, err := decodeRecord(mustBlob(t, backend, "qc"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{models.KeyPassword: "secret", models.KeyNetwork: "corp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted record changed (-want +got):\n%s", diff)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.SetNetwork(strPtr("lab")); err != nil {
		t.Fatalf("expected writes to resume after Clear, got %v", err)
	}
}

func TestSecureStoreSetAllIsAtomic(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSecureStore("qc", backend, nil)
	backend.SaveErr = errors.New("denied")
	err := store.SetAll(map[string]*string{
		models.KeyPassword: strPtr("secret"),
		models.KeyNetwork:  strPtr("corp"),
	})
	if err == nil {
		t.Fatalf("expected save error")
	}
	if _, ok := store.Password(); ok {
		t.Fatalf("failed SetAll must not change the cache")
	}

	backend.SaveErr = nil
	if err := store.SetAll(map[string]*string{
		models.KeyPassword: strPtr("secret"),
		models.KeyNetwork:  strPtr("corp"),
	}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	if backend.Saves != 2 {
		t.Fatalf("expected one backend write per SetAll, got %d", backend.Saves)
	}
}

func mustBlob(t *testing.T, b *MemoryBackend, id string) []byte {
	t.Helper()
	blob, ok := b.Blob(id)
	if !ok {
		t.Fatalf("no blob stored for %s", id)
	}
	return blob
}
