package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

type NoteRepo struct{ db *pgxpool.Pool }

func NewNoteRepo(db *pgxpool.Pool) *NoteRepo { return &NoteRepo{db: db} }

func (r *NoteRepo) ListByIssue(ctx context.Context, issueID string) ([]models.Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, issue_id, content, author, created_at
		FROM notes
		WHERE issue_id = $1
		ORDER BY created_at DESC
	`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.IssueID, &n.Content, &n.Author, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoteRepo) Get(ctx context.Context, id string) (*models.Note, error) {
	var n models.Note
	err := r.db.QueryRow(ctx, `
		SELECT id, issue_id, content, author, created_at
		FROM notes WHERE id=$1
	`, id).Scan(&n.ID, &n.IssueID, &n.Content, &n.Author, &n.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepo) Create(ctx context.Context, n *models.Note) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO notes (issue_id, content, author)
		VALUES ($1,$2,$3)
		RETURNING id, created_at
	`, n.IssueID, n.Content, n.Author).Scan(&n.ID, &n.CreatedAt)
}
