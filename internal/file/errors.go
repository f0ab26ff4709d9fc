package file

import "errors"

var (
	// ErrForbidden means the caller is authenticated but lacks a role
	// permitting the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput signals a missing or malformed request field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals that no metadata record exists for the file id.
	ErrNotFound = errors.New("file not found")
	// ErrObjectNotFound signals the object bytes are absent from storage
	// even though a grant was requested for them.
	ErrObjectNotFound = errors.New("object not found")
	// ErrDuplicateID signals a file id collision on insert.
	ErrDuplicateID = errors.New("duplicate file id")
	// ErrMetadataUnavailable wraps metadata store failures.
	ErrMetadataUnavailable = errors.New("metadata store unavailable")
	// ErrStorageUnavailable wraps object store failures.
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
