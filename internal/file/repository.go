package file

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const uniqueViolationCode = "23505"

// Repository provides access to file metadata and download history.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new file repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores metadata for a new file.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO files (file_id, object_key, filename, uploaded_by, uploaded_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING file_id, object_key, filename, uploaded_by, uploaded_at;`

	row := r.pool.QueryRow(ctx, query,
		rec.FileID,
		rec.Key,
		rec.Filename,
		rec.UploadedBy,
		rec.UploadedAt,
	)

	var stored Record
	if err := row.Scan(&stored.FileID, &stored.Key, &stored.Filename, &stored.UploadedBy, &stored.UploadedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Record{}, ErrDuplicateID
		}
		return Record{}, fmt.Errorf("insert file record: %w", err)
	}
	return stored, nil
}

// ListAll returns every file record, newest upload first.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT file_id, object_key, filename, uploaded_by, uploaded_at
FROM files
ORDER BY uploaded_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list file records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.FileID, &rec.Key, &rec.Filename, &rec.UploadedBy, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan file record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file records: %w", err)
	}
	return records, nil
}

// Get fetches the metadata record for a single file.
func (r *Repository) Get(ctx context.Context, fileID uuid.UUID) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT file_id, object_key, filename, uploaded_by, uploaded_at
FROM files
WHERE file_id = $1;`

	var rec Record
	err := r.pool.QueryRow(ctx, query, fileID).Scan(
		&rec.FileID,
		&rec.Key,
		&rec.Filename,
		&rec.UploadedBy,
		&rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get file record: %w", err)
	}
	return rec, nil
}

// Delete removes the metadata record and returns it, so the caller can
// clean up the object bytes afterwards.
func (r *Repository) Delete(ctx context.Context, fileID uuid.UUID) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
DELETE FROM files
WHERE file_id = $1
RETURNING file_id, object_key, filename, uploaded_by, uploaded_at;`

	var rec Record
	err := r.pool.QueryRow(ctx, query, fileID).Scan(
		&rec.FileID,
		&rec.Key,
		&rec.Filename,
		&rec.UploadedBy,
		&rec.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("delete file record: %w", err)
	}
	return rec, nil
}

// AppendHistory writes one download audit row.
func (r *Repository) AppendHistory(ctx context.Context, rec DownloadRecord) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO download_history (download_id, file_id, requested_by, requested_at, as_attachment, download_name)
VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := r.pool.Exec(ctx, query,
		rec.DownloadID,
		rec.FileID,
		rec.RequestedBy,
		rec.RequestedAt,
		rec.AsAttachment,
		rec.DownloadName,
	)
	if err != nil {
		return fmt.Errorf("append download history: %w", err)
	}
	return nil
}
