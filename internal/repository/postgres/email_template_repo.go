package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

type EmailTemplateRepo struct{ db *pgxpool.Pool }

func NewEmailTemplateRepo(db *pgxpool.Pool) *EmailTemplateRepo { return &EmailTemplateRepo{db: db} }

// List returns defaults first, then alphabetical by name.
func (r *EmailTemplateRepo) List(ctx context.Context) ([]models.EmailTemplate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, subject, content, variables, is_default, created_at, updated_at
		FROM email_templates
		ORDER BY is_default DESC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EmailTemplate
	for rows.Next() {
		var t models.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Content, &t.Variables, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *EmailTemplateRepo) Get(ctx context.Context, id string) (*models.EmailTemplate, error) {
	var t models.EmailTemplate
	err := r.db.QueryRow(ctx, `
		SELECT id, name, subject, content, variables, is_default, created_at, updated_at
		FROM email_templates WHERE id=$1
	`, id).Scan(&t.ID, &t.Name, &t.Subject, &t.Content, &t.Variables, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts the template. When it is the new default, other defaults are
// cleared in the same transaction so exactly one default survives.
func (r *EmailTemplateRepo) Create(ctx context.Context, t *models.EmailTemplate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if t.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE email_templates SET is_default=false, updated_at=now() WHERE is_default`); err != nil {
			return err
		}
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO email_templates (name, subject, content, variables, is_default)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at
	`, t.Name, t.Subject, t.Content, t.Variables, t.IsDefault).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *EmailTemplateRepo) Update(ctx context.Context, t *models.EmailTemplate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if t.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE email_templates SET is_default=false, updated_at=now() WHERE is_default AND id <> $1`, t.ID); err != nil {
			return err
		}
	}
	ct, err := tx.Exec(ctx, `
		UPDATE email_templates SET
			name=$1, subject=$2, content=$3, variables=$4, is_default=$5, updated_at=now()
		WHERE id=$6
	`, t.Name, t.Subject, t.Content, t.Variables, t.IsDefault, t.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *EmailTemplateRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM email_templates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EmailTemplateRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM email_templates`).Scan(&n)
	return n, err
}
