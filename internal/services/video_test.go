package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/data/repos"
	"github.com/kikitori/kikitori-backend/internal/data/repos/testutil"
)

// fakeBucket records prefix deletes so tests can assert artifact cleanup
// without a storage backend.
type fakeBucket struct {
	mu              sync.Mutex
	deletedPrefixes []string
}

func (f *fakeBucket) Upload(ctx context.Context, key, contentType string, size int64, file io.Reader) error {
	return nil
}

func (f *fakeBucket) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeBucket) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeBucket) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

func (f *fakeBucket) DeletePrefix(ctx context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	return nil
}

func (f *fakeBucket) GetPublicURL(key string) string { return key }

func TestVideoServiceRegisterIsIdempotentPerSourceURL(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	svc := NewVideoService(tx, log, repos.NewVideoRepo(tx, log), &fakeBucket{})
	ctx := context.Background()

	v, created, err := svc.Register(ctx, "https://example.com/register", "News 1")
	if err != nil || !created {
		t.Fatalf("Register: err=%v created=%v", err, created)
	}
	if v.DataDir == "" {
		t.Fatalf("new video has no data_dir")
	}

	again, created, err := svc.Register(ctx, "https://example.com/register", "other title")
	if err != nil || created {
		t.Fatalf("Register rerun: err=%v created=%v", err, created)
	}
	if again.ID != v.ID {
		t.Fatalf("rerun returned a different video: %s vs %s", again.ID, v.ID)
	}
}

func TestVideoServiceDeletePurgesAudioPrefix(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	bucket := &fakeBucket{}
	svc := NewVideoService(tx, log, repos.NewVideoRepo(tx, log), bucket)
	ctx := context.Background()

	v, _, err := svc.Register(ctx, "https://example.com/delete-purge", "t")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	dir, err := svc.Delete(ctx, v.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if dir != v.DataDir {
		t.Fatalf("Delete returned %q, want %q", dir, v.DataDir)
	}
	if len(bucket.deletedPrefixes) != 1 || bucket.deletedPrefixes[0] != v.DataDir {
		t.Fatalf("bucket purge not invoked for %q: %v", v.DataDir, bucket.deletedPrefixes)
	}

	// Deleting an unknown video is a quiet no-op with no purge.
	dir, err = svc.Delete(ctx, uuid.New())
	if err != nil || dir != "" {
		t.Fatalf("Delete missing: dir=%q err=%v", dir, err)
	}
	if len(bucket.deletedPrefixes) != 1 {
		t.Fatalf("purge ran for a missing video")
	}
}
