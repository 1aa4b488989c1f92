package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
)

type ActionItemRepo struct{ db *pgxpool.Pool }

func NewActionItemRepo(db *pgxpool.Pool) *ActionItemRepo { return &ActionItemRepo{db: db} }

func (r *ActionItemRepo) ListByIssue(ctx context.Context, issueID string) ([]models.ActionItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, issue_id, title, description, priority, completed, due_date, created_at, updated_at
		FROM action_items
		WHERE issue_id = $1
		ORDER BY created_at ASC
	`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ActionItem
	for rows.Next() {
		var a models.ActionItem
		if err := rows.Scan(&a.ID, &a.IssueID, &a.Title, &a.Description, &a.Priority, &a.Completed, &a.DueDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActionItemRepo) Create(ctx context.Context, a *models.ActionItem) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO action_items (issue_id, title, description, priority, completed, due_date)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at
	`, a.IssueID, a.Title, a.Description, a.Priority, a.Completed, a.DueDate).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Patch writes only the fields present in p and returns the updated row.
func (r *ActionItemRepo) Patch(ctx context.Context, id string, p repository.ActionItemPatch) (*models.ActionItem, error) {
	sets := []string{"updated_at=now()"}
	args := []any{}

	if p.Title != nil {
		args = append(args, *p.Title)
		sets = append(sets, "title=$"+itoa(len(args)))
	}
	if p.Description != nil {
		args = append(args, *p.Description)
		sets = append(sets, "description=$"+itoa(len(args)))
	}
	if p.Priority != nil {
		args = append(args, *p.Priority)
		sets = append(sets, "priority=$"+itoa(len(args)))
	}
	if p.Completed != nil {
		args = append(args, *p.Completed)
		sets = append(sets, "completed=$"+itoa(len(args)))
	}
	if p.ClearDueDate {
		sets = append(sets, "due_date=NULL")
	} else if p.DueDate != nil {
		args = append(args, *p.DueDate)
		sets = append(sets, "due_date=$"+itoa(len(args)))
	}

	args = append(args, id)
	sql := `
		UPDATE action_items SET ` + strings.Join(sets, ", ") + `
		WHERE id=$` + itoa(len(args)) + `
		RETURNING id, issue_id, title, description, priority, completed, due_date, created_at, updated_at`

	var a models.ActionItem
	err := r.db.QueryRow(ctx, sql, args...).
		Scan(&a.ID, &a.IssueID, &a.Title, &a.Description, &a.Priority, &a.Completed, &a.DueDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete is unconditional; a missing row surfaces as pgx.ErrNoRows.
func (r *ActionItemRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM action_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func itoa(i int) string { return strconv.Itoa(i) }
