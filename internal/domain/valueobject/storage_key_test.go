package valueobject

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewStorageKey_PrefixesPhotoID(t *testing.T) {
	photoID := uuid.New()
	name, _ := NewPhotoName("beach.jpg")

	key := NewStorageKey(photoID, name)

	if !strings.HasPrefix(key.Value(), photoID.String()+"/") {
		t.Errorf("key %q should start with %q", key.Value(), photoID.String()+"/")
	}
	if !strings.HasSuffix(key.Value(), "beach.jpg") {
		t.Errorf("key %q should end with sanitized name", key.Value())
	}
}

func TestNewStorageKey_SanitizesUnsafeCharacters(t *testing.T) {
	photoID := uuid.New()
	name, _ := NewPhotoName("my photo (1).jpg")

	key := NewStorageKey(photoID, name)

	want := photoID.String() + "/my-photo--1-.jpg"
	if key.Value() != want {
		t.Errorf("got %q, want %q", key.Value(), want)
	}
}

func TestNewStorageKey_SamePhotoID_IsDeterministic(t *testing.T) {
	photoID := uuid.New()
	name, _ := NewPhotoName("beach.jpg")

	k1 := NewStorageKey(photoID, name)
	k2 := NewStorageKey(photoID, name)

	if k1.Value() != k2.Value() {
		t.Errorf("keys differ: %q vs %q", k1.Value(), k2.Value())
	}
}

func TestNewStorageKey_DifferentPhotos_NeverCollide(t *testing.T) {
	name, _ := NewPhotoName("same-name.jpg")

	k1 := NewStorageKey(uuid.New(), name)
	k2 := NewStorageKey(uuid.New(), name)

	if k1.Value() == k2.Value() {
		t.Errorf("keys for different photos must not collide: %q", k1.Value())
	}
}

func TestStorageKey_PhotoID_RoundTrips(t *testing.T) {
	photoID := uuid.New()
	name, _ := NewPhotoName("beach.jpg")
	key := NewStorageKey(photoID, name)

	got, err := key.PhotoID()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != photoID {
		t.Errorf("got %v, want %v", got, photoID)
	}
}

func TestReconstructStorageKey_ValidKey_Succeeds(t *testing.T) {
	original := NewStorageKey(uuid.New(), mustPhotoName(t, "beach.jpg"))

	restored, err := ReconstructStorageKey(original.Value())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Value() != original.Value() {
		t.Errorf("got %q, want %q", restored.Value(), original.Value())
	}
}

func TestReconstructStorageKey_MissingPrefix_ReturnsError(t *testing.T) {
	_, err := ReconstructStorageKey("no-slash-here")

	if err == nil {
		t.Error("expected error for key without photo id prefix")
	}
}

func TestReconstructStorageKey_NonUUIDPrefix_ReturnsError(t *testing.T) {
	_, err := ReconstructStorageKey("not-a-uuid/name.jpg")

	if err == nil {
		t.Error("expected error for non-uuid prefix")
	}
}

func mustPhotoName(t *testing.T, name string) PhotoName {
	t.Helper()
	pn, err := NewPhotoName(name)
	if err != nil {
		t.Fatalf("invalid photo name %q: %v", name, err)
	}
	return pn
}
