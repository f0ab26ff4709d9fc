package file

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudfilestore/api/internal/identity"
	"github.com/cloudfilestore/api/internal/policy"
	"github.com/google/uuid"
)

type metadataStore interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, fileID uuid.UUID) (Record, error)
	Delete(ctx context.Context, fileID uuid.UUID) (Record, error)
	AppendHistory(ctx context.Context, rec DownloadRecord) error
}

type objectGateway interface {
	PresignUpload(ctx context.Context, key string) (Grant, error)
	PresignDownload(ctx context.Context, key string, opts DownloadOptions) (Grant, error)
	Remove(ctx context.Context, key string) error
}

// Service orchestrates the file-store operations. Every operation
// authorizes the caller before touching either store; a denied request
// has no side effects.
type Service struct {
	repo    metadataStore
	store   objectGateway
	nowFunc func() time.Time
}

// NewService constructs a file service.
func NewService(repo metadataStore, store objectGateway) *Service {
	return &Service{
		repo:    repo,
		store:   store,
		nowFunc: time.Now,
	}
}

// List returns all file records, newest upload first. An empty store
// yields an empty slice, not an error.
func (s *Service) List(ctx context.Context, caller identity.Caller) ([]Record, error) {
	if !policy.Allowed(policy.OpList, caller.Roles) {
		return nil, ErrForbidden
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, metadataErr(err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// PresignUpload issues a PUT grant for a fresh file identity and then
// records the metadata. The grant is issued first: a gateway failure must
// never leave an orphaned metadata record. If the insert fails afterwards
// the already-issued grant stays valid until expiry; grants cannot be
// revoked.
func (s *Service) PresignUpload(ctx context.Context, caller identity.Caller, filename string) (UploadGrant, error) {
	if !policy.Allowed(policy.OpPresignUpload, caller.Roles) {
		return UploadGrant{}, ErrForbidden
	}

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return UploadGrant{}, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}

	fileID := uuid.New()
	key := fmt.Sprintf("uploads/%s/%s", fileID, filename)

	grant, err := s.store.PresignUpload(ctx, key)
	if err != nil {
		return UploadGrant{}, err
	}

	rec := Record{
		FileID:     fileID,
		Key:        key,
		Filename:   filename,
		UploadedBy: caller.Display(),
		UploadedAt: s.nowFunc().UTC(),
	}

	stored, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return UploadGrant{}, metadataErr(err)
	}

	return UploadGrant{FileID: stored.FileID, Key: stored.Key, Grant: grant}, nil
}

// PresignDownload looks up the record and issues a GET grant for its key.
// Issuing a grant does not imply the caller fetches the object; recording
// a download is the separate RecordDownload operation.
func (s *Service) PresignDownload(ctx context.Context, caller identity.Caller, fileID uuid.UUID, opts DownloadOptions) (Grant, error) {
	if !policy.Allowed(policy.OpPresignDownload, caller.Roles) {
		return Grant{}, ErrForbidden
	}

	rec, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return Grant{}, metadataErr(err)
	}

	return s.store.PresignDownload(ctx, rec.Key, opts)
}

// RecordDownload appends one audit row. Duplicate calls append duplicate
// rows; there is no dedup guarantee.
func (s *Service) RecordDownload(ctx context.Context, caller identity.Caller, fileID uuid.UUID, opts DownloadOptions) error {
	if !policy.Allowed(policy.OpRecordDownload, caller.Roles) {
		return ErrForbidden
	}

	rec := DownloadRecord{
		DownloadID:   uuid.New(),
		FileID:       fileID,
		RequestedBy:  caller.Display(),
		RequestedAt:  s.nowFunc().UTC(),
		AsAttachment: opts.AsAttachment,
		DownloadName: opts.DownloadName,
	}

	if err := s.repo.AppendHistory(ctx, rec); err != nil {
		return metadataErr(err)
	}
	return nil
}

// Delete removes the metadata record first and the object bytes second,
// so a partial failure leaves "record gone, object maybe present" rather
// than a record pointing at deleted bytes. Each step fails with its own
// sentinel so the caller can retry only the step that failed.
func (s *Service) Delete(ctx context.Context, caller identity.Caller, fileID uuid.UUID) error {
	if !policy.Allowed(policy.OpDelete, caller.Roles) {
		return ErrForbidden
	}

	rec, err := s.repo.Delete(ctx, fileID)
	if err != nil {
		return metadataErr(err)
	}

	return s.store.Remove(ctx, rec.Key)
}

func metadataErr(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateID) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
}
