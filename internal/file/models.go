package file

import (
	"time"

	"github.com/google/uuid"
)

// Record is the durable metadata row for one stored object. Records are
// immutable once written; the only mutation is deletion.
type Record struct {
	FileID     uuid.UUID `json:"fileId"`
	Key        string    `json:"key"`
	Filename   string    `json:"filename"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DownloadRecord is one append-only audit row. The service never mutates
// or deletes these.
type DownloadRecord struct {
	DownloadID   uuid.UUID `json:"downloadId"`
	FileID       uuid.UUID `json:"fileId"`
	RequestedBy  string    `json:"requestedBy"`
	RequestedAt  time.Time `json:"requestedAt"`
	AsAttachment bool      `json:"asAttachment"`
	DownloadName string    `json:"downloadName,omitempty"`
}

// Grant is a time-limited presigned URL for a single object key and HTTP
// method. Grants are ephemeral and never persisted; expiry is enforced by
// the object store, not by this service.
type Grant struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadGrant pairs a fresh file identity with its PUT grant.
type UploadGrant struct {
	FileID uuid.UUID `json:"fileId"`
	Key    string    `json:"key"`
	Grant
}

// DownloadOptions shape the Content-Disposition of the eventual GET.
type DownloadOptions struct {
	AsAttachment bool
	DownloadName string
}
