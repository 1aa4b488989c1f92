package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

type AttachmentRepo struct{ db *pgxpool.Pool }

func NewAttachmentRepo(db *pgxpool.Pool) *AttachmentRepo { return &AttachmentRepo{db: db} }

func (r *AttachmentRepo) Get(ctx context.Context, id string) (*models.Attachment, error) {
	var a models.Attachment
	err := r.db.QueryRow(ctx, `
		SELECT id, note_id, file_name, content_type, size, storage_key, status, created_by, created_at, updated_at
		FROM attachments WHERE id=$1
	`, id).Scan(&a.ID, &a.NoteID, &a.FileName, &a.ContentType, &a.Size, &a.StorageKey, &a.Status, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts the placeholder row; status starts UPLOADING with an empty
// storage key.
func (r *AttachmentRepo) Create(ctx context.Context, a *models.Attachment) error {
	a.Status = models.AttachmentUploading
	return r.db.QueryRow(ctx, `
		INSERT INTO attachments (note_id, file_name, content_type, size, status, created_by)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, storage_key, created_at, updated_at
	`, a.NoteID, a.FileName, a.ContentType, a.Size, a.Status, a.CreatedBy).
		Scan(&a.ID, &a.StorageKey, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AttachmentRepo) SetUploaded(ctx context.Context, id, storageKey string) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE attachments SET storage_key=$1, status=$2, updated_at=now()
		WHERE id=$3
	`, storageKey, models.AttachmentAvailable, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AttachmentRepo) SetStatus(ctx context.Context, id, status string) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE attachments SET status=$1, updated_at=now()
		WHERE id=$2
	`, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
