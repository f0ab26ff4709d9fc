package file

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// MinIOStore issues presigned grants against one bucket of an
// S3-compatible object store.
type MinIOStore struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

// NewMinIOStore constructs the gateway. ttl bounds every issued grant.
func NewMinIOStore(client *minio.Client, bucket string, ttl time.Duration) *MinIOStore {
	return &MinIOStore{
		client: client,
		bucket: bucket,
		ttl:    ttl,
		now:    time.Now,
	}
}

// PresignUpload issues a PUT grant for the key. Only the key is bound
// into the signature: binding a Content-Type would force uploaders to
// send a byte-identical header or hit signature mismatches.
func (s *MinIOStore) PresignUpload(ctx context.Context, key string) (Grant, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.ttl)
	if err != nil {
		return Grant{}, fmt.Errorf("%w: presign put %q: %v", ErrStorageUnavailable, key, err)
	}

	return Grant{
		URL:       u.String(),
		Method:    http.MethodPut,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}, nil
}

// PresignDownload issues a GET grant for the key. The object is
// HEAD-checked first so a missing object surfaces as ErrObjectNotFound
// here instead of a confusing storage-side 403/404 after the fact.
func (s *MinIOStore) PresignDownload(ctx context.Context, key string, opts DownloadOptions) (Grant, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return Grant{}, ErrObjectNotFound
		}
		return Grant{}, fmt.Errorf("%w: stat %q: %v", ErrStorageUnavailable, key, err)
	}

	params := make(url.Values)
	if opts.DownloadName != "" {
		disposition := "attachment"
		if !opts.AsAttachment {
			disposition = "inline"
		}
		params.Set("response-content-disposition", fmt.Sprintf("%s; filename=%q", disposition, opts.DownloadName))
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, params)
	if err != nil {
		return Grant{}, fmt.Errorf("%w: presign get %q: %v", ErrStorageUnavailable, key, err)
	}

	return Grant{
		URL:       u.String(),
		Method:    http.MethodGet,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}, nil
}

// Remove deletes the object bytes for the key.
func (s *MinIOStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove %q: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}
