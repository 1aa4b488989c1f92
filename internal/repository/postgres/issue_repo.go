package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

type IssueRepo struct{ db *pgxpool.Pool }

func NewIssueRepo(db *pgxpool.Pool) *IssueRepo { return &IssueRepo{db: db} }

// Priority is stored as text; rank it for ordering.
const priorityRank = `CASE i.priority WHEN 'URGENT' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END`

// List returns non-archived issues in the given statuses with their category,
// most recent note and note count.
func (r *IssueRepo) List(ctx context.Context, statuses []string) ([]models.Issue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			i.id, i.title, i.description, i.resolution_plan, i.work_performed, i.roadblocks,
			i.priority, i.status, i.archived, i.category_id, i.external_ticket_id,
			i.created_at, i.updated_at,
			c.id, c.name, c.created_at,
			n.id, n.content, n.author, n.created_at,
			(SELECT COUNT(*) FROM notes WHERE issue_id = i.id)
		FROM issues i
		LEFT JOIN categories c ON c.id = i.category_id
		LEFT JOIN LATERAL (
			SELECT id, content, author, created_at
			FROM notes
			WHERE issue_id = i.id
			ORDER BY created_at DESC
			LIMIT 1
		) n ON true
		WHERE NOT i.archived AND i.status = ANY($1)
		ORDER BY `+priorityRank+` DESC, i.updated_at DESC
	`, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Issue
	for rows.Next() {
		var (
			it                              models.Issue
			catID, catName                  *string
			catCreated                      *time.Time
			noteID, noteContent, noteAuthor *string
			noteCreated                     *time.Time
		)
		if err := rows.Scan(
			&it.ID, &it.Title, &it.Description, &it.ResolutionPlan, &it.WorkPerformed, &it.Roadblocks,
			&it.Priority, &it.Status, &it.Archived, &it.CategoryID, &it.ExternalTicketID,
			&it.CreatedAt, &it.UpdatedAt,
			&catID, &catName, &catCreated,
			&noteID, &noteContent, &noteAuthor, &noteCreated,
			&it.NoteCount,
		); err != nil {
			return nil, err
		}
		if catID != nil {
			it.Category = &models.Category{ID: *catID, Name: *catName, CreatedAt: *catCreated}
		}
		if noteID != nil {
			it.LatestNote = &models.Note{
				ID: *noteID, IssueID: it.ID, Content: *noteContent,
				Author: *noteAuthor, CreatedAt: *noteCreated,
			}
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Get loads one issue with its notes and action items.
func (r *IssueRepo) Get(ctx context.Context, id string) (*models.Issue, error) {
	var it models.Issue
	err := r.db.QueryRow(ctx, `
		SELECT
			i.id, i.title, i.description, i.resolution_plan, i.work_performed, i.roadblocks,
			i.priority, i.status, i.archived, i.category_id, i.external_ticket_id,
			i.created_at, i.updated_at
		FROM issues i
		WHERE i.id = $1
	`, id).Scan(
		&it.ID, &it.Title, &it.Description, &it.ResolutionPlan, &it.WorkPerformed, &it.Roadblocks,
		&it.Priority, &it.Status, &it.Archived, &it.CategoryID, &it.ExternalTicketID,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, issue_id, content, author, created_at
		FROM notes
		WHERE issue_id = $1
		ORDER BY created_at DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.IssueID, &n.Content, &n.Author, &n.CreatedAt); err != nil {
			return nil, err
		}
		it.Notes = append(it.Notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	it.NoteCount = len(it.Notes)

	items, err := r.db.Query(ctx, `
		SELECT id, issue_id, title, description, priority, completed, due_date, created_at, updated_at
		FROM action_items
		WHERE issue_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer items.Close()
	for items.Next() {
		var a models.ActionItem
		if err := items.Scan(&a.ID, &a.IssueID, &a.Title, &a.Description, &a.Priority, &a.Completed, &a.DueDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		it.ActionItems = append(it.ActionItems, a)
	}
	return &it, items.Err()
}

func (r *IssueRepo) Create(ctx context.Context, i *models.Issue) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO issues (title, description, resolution_plan, work_performed, roadblocks,
			priority, status, category_id, external_ticket_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, archived, created_at, updated_at
	`,
		i.Title, i.Description, i.ResolutionPlan, i.WorkPerformed, i.Roadblocks,
		i.Priority, i.Status, i.CategoryID, i.ExternalTicketID,
	).Scan(&i.ID, &i.Archived, &i.CreatedAt, &i.UpdatedAt)
}

func (r *IssueRepo) Update(ctx context.Context, i *models.Issue) error {
	i.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE issues SET
			title=$1, description=$2, resolution_plan=$3, work_performed=$4, roadblocks=$5,
			priority=$6, status=$7, archived=$8, category_id=$9, external_ticket_id=$10, updated_at=$11
		WHERE id=$12
	`,
		i.Title, i.Description, i.ResolutionPlan, i.WorkPerformed, i.Roadblocks,
		i.Priority, i.Status, i.Archived, i.CategoryID, i.ExternalTicketID, i.UpdatedAt, i.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// -----------------------------------------------------------------------------
// Dashboard counters
// -----------------------------------------------------------------------------

func (r *IssueRepo) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM issues
		WHERE NOT archived AND status NOT IN ('RESOLVED','CLOSED')
	`).Scan(&n)
	return n, err
}

func (r *IssueRepo) CountResolvedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM issues
		WHERE NOT archived AND status IN ('RESOLVED','CLOSED') AND updated_at >= $1
	`, since).Scan(&n)
	return n, err
}

func (r *IssueRepo) CountOpenByPriorities(ctx context.Context, prios []string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM issues
		WHERE NOT archived AND status NOT IN ('RESOLVED','CLOSED') AND priority = ANY($1)
	`, prios).Scan(&n)
	return n, err
}
