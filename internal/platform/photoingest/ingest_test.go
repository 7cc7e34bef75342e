package photoingest

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"barangay-pet-registry/internal/adapters/blob"
	"barangay-pet-registry/internal/ports/photos"
)

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
}

func TestIngest_UploadsAndReturnsPublicURL(t *testing.T) {
	store := blob.NewMemory()
	ing := New(store, nil)

	url, err := ing.Ingest(context.Background(), "bgy-1", pngDataURL(), "pets/pet-9")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if !strings.HasSuffix(url, "bgy-1/pets/pet-9.png") {
		t.Fatalf("expected tenant-namespaced key in url, got %s", url)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored object, got %d", store.Len())
	}
}

func TestIngest_NoTenantFails(t *testing.T) {
	ing := New(blob.NewMemory(), nil)

	if _, err := ing.Ingest(context.Background(), "", pngDataURL(), "pets/x"); err != ErrNoTenant {
		t.Fatalf("expected ErrNoTenant, got %v", err)
	}
}

func TestIngest_NonDataPayloadPassesThrough(t *testing.T) {
	store := blob.NewMemory()
	ing := New(store, nil)

	url, err := ing.Ingest(context.Background(), "bgy-1", "https://cdn.example/pic.jpg", "pets/x")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if url != "https://cdn.example/pic.jpg" {
		t.Fatalf("expected pass-through, got %s", url)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no upload for non-data payload")
	}
}

type failingStore struct{}

func (failingStore) Put(ctx context.Context, key string, r io.Reader, opts photos.PutOptions) error {
	return errors.New("boom")
}
func (failingStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, photos.ErrNotFound
}
func (failingStore) PublicURL(key string) string { return "" }
func (failingStore) Driver() photos.Driver       { return photos.DriverMemory }

func TestIngest_UploadFailureFallsBackToPayload(t *testing.T) {
	ing := New(failingStore{}, nil)

	payload := pngDataURL()
	url, err := ing.Ingest(context.Background(), "bgy-1", payload, "strays/s1")
	if err != nil {
		t.Fatalf("Ingest should swallow upload errors, got %v", err)
	}
	if url != payload {
		t.Fatalf("expected original payload on failure")
	}
}

func TestIngest_MalformedDataURLFallsBack(t *testing.T) {
	ing := New(blob.NewMemory(), nil)

	payload := "data:image/png;base64" // sin coma
	url, err := ing.Ingest(context.Background(), "bgy-1", payload, "strays/s1")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if url != payload {
		t.Fatalf("expected original payload for malformed data url")
	}
}
