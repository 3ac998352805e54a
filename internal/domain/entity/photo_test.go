package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/gc-photos/backend/internal/domain/valueobject"
)

func newTestPhotoName() valueobject.PhotoName {
	name, _ := valueobject.NewPhotoName("test.jpg")
	return name
}

func newTestMimeType() valueobject.MimeType {
	mt, _ := valueobject.NewMimeType("image/jpeg")
	return mt
}

func newPendingPhoto() *Photo {
	photo, _ := NewPhoto(uuid.New(), uuid.New(), newTestPhotoName(), newTestMimeType(), 1024)
	return photo
}

func newUploadingPhoto() *Photo {
	photo := newPendingPhoto()
	_ = photo.MarkStarted()
	return photo
}

func newCompletedPhoto() *Photo {
	photo := newUploadingPhoto()
	_ = photo.MarkCompleted()
	return photo
}

func newFailedPhoto() *Photo {
	photo := newPendingPhoto()
	_ = photo.MarkFailed()
	return photo
}

// NewPhoto tests

func TestNewPhoto_InitialStatusIsPending(t *testing.T) {
	photo := newPendingPhoto()

	if photo.Status != PhotoStatusPending {
		t.Errorf("expected status pending, got %s", photo.Status)
	}
}

func TestNewPhoto_ZeroSize_ReturnsErrInvalidPhotoSize(t *testing.T) {
	_, err := NewPhoto(uuid.New(), uuid.New(), newTestPhotoName(), newTestMimeType(), 0)

	if err != ErrInvalidPhotoSize {
		t.Errorf("expected ErrInvalidPhotoSize, got: %v", err)
	}
}

func TestNewPhoto_NegativeSize_ReturnsErrInvalidPhotoSize(t *testing.T) {
	_, err := NewPhoto(uuid.New(), uuid.New(), newTestPhotoName(), newTestMimeType(), -1)

	if err != ErrInvalidPhotoSize {
		t.Errorf("expected ErrInvalidPhotoSize, got: %v", err)
	}
}

func TestNewPhoto_StorageKeyDerivedFromID(t *testing.T) {
	photo := newPendingPhoto()

	keyPhotoID, err := photo.StorageKey.PhotoID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keyPhotoID != photo.ID {
		t.Errorf("storage key prefix %v does not match photo id %v", keyPhotoID, photo.ID)
	}
}

func TestNewPhoto_TimestampsNotYetReached_AreNil(t *testing.T) {
	photo := newPendingPhoto()

	if photo.UploadStartedAt != nil {
		t.Error("UploadStartedAt should be nil before MarkStarted")
	}
	if photo.UploadedAt != nil {
		t.Error("UploadedAt should be nil before a terminal transition")
	}
}

// MarkStarted tests

func TestMarkStarted_FromPending_TransitionsToUploading(t *testing.T) {
	photo := newPendingPhoto()

	if err := photo.MarkStarted(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photo.Status != PhotoStatusUploading {
		t.Errorf("expected status uploading, got %s", photo.Status)
	}
	if photo.UploadStartedAt == nil {
		t.Error("UploadStartedAt should be set")
	}
}

func TestMarkStarted_FromUploading_ReturnsErrInvalidTransition(t *testing.T) {
	photo := newUploadingPhoto()

	if err := photo.MarkStarted(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestMarkStarted_FromCompleted_ReturnsErrInvalidTransition(t *testing.T) {
	photo := newCompletedPhoto()

	if err := photo.MarkStarted(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
	if photo.Status != PhotoStatusCompleted {
		t.Errorf("status should remain completed, got %s", photo.Status)
	}
}

func TestMarkStarted_FromFailed_ReturnsErrInvalidTransition(t *testing.T) {
	photo := newFailedPhoto()

	if err := photo.MarkStarted(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
}

// MarkCompleted tests

func TestMarkCompleted_FromUploading_TransitionsToCompleted(t *testing.T) {
	photo := newUploadingPhoto()

	if err := photo.MarkCompleted(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photo.Status != PhotoStatusCompleted {
		t.Errorf("expected status completed, got %s", photo.Status)
	}
	if photo.UploadedAt == nil {
		t.Error("UploadedAt should be set")
	}
}

func TestMarkCompleted_FromPending_ReturnsErrInvalidTransition(t *testing.T) {
	photo := newPendingPhoto()

	if err := photo.MarkCompleted(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
	if photo.Status != PhotoStatusPending {
		t.Errorf("status should remain pending, got %s", photo.Status)
	}
	if photo.UploadedAt != nil {
		t.Error("failed transition must not mutate timestamps")
	}
}

func TestMarkCompleted_FromCompleted_ReturnsErrInvalidTransition(t *testing.T) {
	photo := newCompletedPhoto()

	if err := photo.MarkCompleted(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
}

// MarkFailed tests

func TestMarkFailed_FromPending_TransitionsToFailed(t *testing.T) {
	photo := newPendingPhoto()

	if err := photo.MarkFailed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photo.Status != PhotoStatusFailed {
		t.Errorf("expected status failed, got %s", photo.Status)
	}
	if photo.UploadedAt == nil {
		t.Error("UploadedAt should be set as the terminal-at timestamp")
	}
}

func TestMarkFailed_FromUploading_TransitionsToFailed(t *testing.T) {
	photo := newUploadingPhoto()

	if err := photo.MarkFailed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photo.Status != PhotoStatusFailed {
		t.Errorf("expected status failed, got %s", photo.Status)
	}
}

func TestMarkFailed_Twice_SecondReturnsErrInvalidTransition(t *testing.T) {
	photo := newPendingPhoto()

	if err := photo.MarkFailed(); err != nil {
		t.Fatalf("unexpected error on first call: %v", err)
	}
	firstUploadedAt := *photo.UploadedAt

	if err := photo.MarkFailed(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition on second call, got: %v", err)
	}
	if !photo.UploadedAt.Equal(firstUploadedAt) {
		t.Error("second call must not overwrite the terminal timestamp")
	}
}

func TestMarkFailed_FromCompleted_ReturnsErrInvalidTransition(t *testing.T) {
	photo := newCompletedPhoto()

	if err := photo.MarkFailed(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
	if photo.Status != PhotoStatusCompleted {
		t.Errorf("status should remain completed, got %s", photo.Status)
	}
}

// Terminal state tests

func TestPhoto_TerminalStates_RejectAllTransitions(t *testing.T) {
	for _, photo := range []*Photo{newCompletedPhoto(), newFailedPhoto()} {
		if err := photo.MarkStarted(); err != ErrInvalidTransition {
			t.Errorf("%s: MarkStarted should fail, got: %v", photo.Status, err)
		}
		if err := photo.MarkCompleted(); err != ErrInvalidTransition {
			t.Errorf("%s: MarkCompleted should fail, got: %v", photo.Status, err)
		}
		if err := photo.MarkFailed(); err != ErrInvalidTransition {
			t.Errorf("%s: MarkFailed should fail, got: %v", photo.Status, err)
		}
	}
}

func TestPhotoStatus_IsTerminal(t *testing.T) {
	if PhotoStatusPending.IsTerminal() {
		t.Error("pending should not be terminal")
	}
	if PhotoStatusUploading.IsTerminal() {
		t.Error("uploading should not be terminal")
	}
	if !PhotoStatusCompleted.IsTerminal() {
		t.Error("completed should be terminal")
	}
	if !PhotoStatusFailed.IsTerminal() {
		t.Error("failed should be terminal")
	}
}

// ReconstructPhoto tests

func TestReconstructPhoto_RestoresAllFields(t *testing.T) {
	id := uuid.New()
	jobID := uuid.New()
	ownerID := uuid.New()
	name := newTestPhotoName()
	mimeType := newTestMimeType()
	key := valueobject.NewStorageKey(id, name)
	createdAt := time.Now().Add(-time.Hour)
	startedAt := time.Now().Add(-30 * time.Minute)
	uploadedAt := time.Now().Add(-29 * time.Minute)

	photo := ReconstructPhoto(id, jobID, ownerID, name, mimeType, 2048, key,
		PhotoStatusCompleted, createdAt, uploadedAt, &startedAt, &uploadedAt)

	if photo.ID != id || photo.JobID != jobID || photo.OwnerID != ownerID {
		t.Error("identity fields not restored")
	}
	if photo.Status != PhotoStatusCompleted {
		t.Errorf("expected status completed, got %s", photo.Status)
	}
	if photo.Size != 2048 {
		t.Errorf("expected size 2048, got %d", photo.Size)
	}
	if photo.UploadStartedAt == nil || !photo.UploadStartedAt.Equal(startedAt) {
		t.Error("UploadStartedAt not restored")
	}
}
