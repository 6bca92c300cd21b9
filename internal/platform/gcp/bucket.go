package gcp

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/kikitori/kikitori-backend/internal/config"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// BucketService stores generated audio artifacts (extracted track plus
// slowed phrase clips) under keys that mirror each video's data_dir.
type BucketService interface {
	Upload(ctx context.Context, key, contentType string, size int64, file io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	DeletePrefix(ctx context.Context, prefix string) error
	GetPublicURL(key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	policy        ObjectPolicy
	emulatorHost  string
}

func NewBucketService(log *logger.Logger, cfg config.StorageConfig) (BucketService, error) {
	if cfg.AudioBucket == "" {
		return nil, fmt.Errorf("missing audio bucket name")
	}
	serviceLog := log.With("service", "BucketService")

	emulatorHost := strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/")

	ctx := context.Background()
	var opts []option.ClientOption
	if emulatorHost != "" {
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}
	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info(
		"Object storage initialized",
		"bucket", cfg.AudioBucket,
		"emulator_host", emulatorHost,
		"max_object_bytes", cfg.MaxObjectBytes,
	)

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    cfg.AudioBucket,
		policy: ObjectPolicy{
			MaxBytes:            cfg.MaxObjectBytes,
			AllowedContentTypes: cfg.AllowedContentTypes,
		},
		emulatorHost: emulatorHost,
	}, nil
}

func (bs *bucketService) Upload(ctx context.Context, key, contentType string, size int64, file io.Reader) error {
	if contentType == "" {
		contentType = contentTypeForKey(key)
	}
	if err := bs.policy.Validate(contentType, size); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	// Enforce the size cap even if the caller understated size.
	n, err := io.Copy(w, io.LimitReader(file, bs.policy.MaxBytes+1))
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if n > bs.policy.MaxBytes {
		_ = w.Close()
		return fmt.Errorf("%w: stream exceeded %d bytes", ErrObjectTooLarge, bs.policy.MaxBytes)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

// readCloserWithCancel ties the reader's context lifetime to Close so the
// caller can stream the body without the timeout firing mid-read.
type readCloserWithCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *readCloserWithCancel) Close() error {
	err := r.ReadCloser.Close()
	if r.cancel != nil {
		r.cancel()
	}
	return err
}

func (bs *bucketService) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ctx2, cancel := context.WithTimeout(ctx, 2*time.Minute)
	r, err := bs.storageClient.Bucket(bs.bucketName).Object(key).NewReader(ctx2)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return &readCloserWithCancel{ReadCloser: r, cancel: cancel}, nil
}

func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := bs.storageClient.Bucket(bs.bucketName).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.bucketName, err)
	}
	return nil
}

func (bs *bucketService) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	it := bs.storageClient.Bucket(bs.bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	out := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

// DeletePrefix removes every object under prefix. Object deletes run in
// parallel; a missing object is not an error since a retried cleanup may
// race an earlier partial one.
func (bs *bucketService) DeletePrefix(ctx context.Context, prefix string) error {
	keys, err := bs.ListKeys(ctx, prefix)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, k := range keys {
		key := k
		g.Go(func() error {
			err := bs.Delete(gctx, key)
			if err != nil && strings.Contains(err.Error(), storage.ErrObjectNotExist.Error()) {
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("delete prefix %q: %w", prefix, err)
	}
	return nil
}

func (bs *bucketService) GetPublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if bs.emulatorHost != "" {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			bs.emulatorHost,
			url.PathEscape(bs.bucketName),
			url.PathEscape(key),
		)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
