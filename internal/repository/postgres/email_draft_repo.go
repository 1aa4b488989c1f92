package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

type EmailDraftRepo struct{ db *pgxpool.Pool }

func NewEmailDraftRepo(db *pgxpool.Pool) *EmailDraftRepo { return &EmailDraftRepo{db: db} }

func (r *EmailDraftRepo) List(ctx context.Context) ([]models.EmailDraft, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			d.id, d.template_id, d.subject, d.content, d.recipients, d.created_at, d.updated_at,
			COALESCE(array_agg(ei.issue_id::text) FILTER (WHERE ei.issue_id IS NOT NULL), '{}')
		FROM email_drafts d
		LEFT JOIN email_issues ei ON ei.draft_id = d.id
		GROUP BY d.id
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EmailDraft
	for rows.Next() {
		var d models.EmailDraft
		if err := rows.Scan(&d.ID, &d.TemplateID, &d.Subject, &d.Content, &d.Recipients, &d.CreatedAt, &d.UpdatedAt, &d.IssueIDs); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get loads the draft together with its template and linked issues.
func (r *EmailDraftRepo) Get(ctx context.Context, id string) (*models.EmailDraft, error) {
	var d models.EmailDraft
	err := r.db.QueryRow(ctx, `
		SELECT id, template_id, subject, content, recipients, created_at, updated_at
		FROM email_drafts WHERE id=$1
	`, id).Scan(&d.ID, &d.TemplateID, &d.Subject, &d.Content, &d.Recipients, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if d.TemplateID != nil {
		var t models.EmailTemplate
		err := r.db.QueryRow(ctx, `
			SELECT id, name, subject, content, variables, is_default, created_at, updated_at
			FROM email_templates WHERE id=$1
		`, *d.TemplateID).Scan(&t.ID, &t.Name, &t.Subject, &t.Content, &t.Variables, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		if err == nil {
			d.Template = &t
		}
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.title, i.description, i.resolution_plan, i.work_performed, i.roadblocks,
			i.priority, i.status, i.archived, i.category_id, i.external_ticket_id,
			i.created_at, i.updated_at
		FROM issues i
		JOIN email_issues ei ON ei.issue_id = i.id
		WHERE ei.draft_id = $1
		ORDER BY i.created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it models.Issue
		if err := rows.Scan(
			&it.ID, &it.Title, &it.Description, &it.ResolutionPlan, &it.WorkPerformed, &it.Roadblocks,
			&it.Priority, &it.Status, &it.Archived, &it.CategoryID, &it.ExternalTicketID,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		d.Issues = append(d.Issues, it)
		d.IssueIDs = append(d.IssueIDs, it.ID)
	}
	return &d, rows.Err()
}

// Create inserts the draft and links the supplied issues in one transaction.
func (r *EmailDraftRepo) Create(ctx context.Context, d *models.EmailDraft, issueIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if d.Recipients == nil {
		d.Recipients = []string{}
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO email_drafts (template_id, subject, content, recipients)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`, d.TemplateID, d.Subject, d.Content, d.Recipients).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return err
	}
	for _, issueID := range issueIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO email_issues (draft_id, issue_id)
			VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, d.ID, issueID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
