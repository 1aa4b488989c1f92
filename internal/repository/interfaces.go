package repository

import (
	"context"
	"time"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

type IssueRepository interface {
	// List returns non-archived issues in the given statuses, each decorated
	// with category, latest note and note count, ordered by priority rank
	// desc then updated_at desc.
	List(ctx context.Context, statuses []string) ([]models.Issue, error)
	Get(ctx context.Context, id string) (*models.Issue, error)
	Create(ctx context.Context, i *models.Issue) error
	Update(ctx context.Context, i *models.Issue) error
}

// IssueCounter feeds the dashboard summary.
type IssueCounter interface {
	CountOpen(ctx context.Context) (int, error)
	CountResolvedSince(ctx context.Context, since time.Time) (int, error)
	CountOpenByPriorities(ctx context.Context, prios []string) (int, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, c *models.Category) error
}

type NoteRepository interface {
	ListByIssue(ctx context.Context, issueID string) ([]models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, n *models.Note) error
}

type AttachmentRepository interface {
	Get(ctx context.Context, id string) (*models.Attachment, error)
	Create(ctx context.Context, a *models.Attachment) error
	// SetUploaded records the storage key and flips status to AVAILABLE.
	SetUploaded(ctx context.Context, id, storageKey string) error
	SetStatus(ctx context.Context, id, status string) error
}

// ActionItemPatch carries only the fields present in a PATCH body. A nil
// pointer leaves the column untouched; ClearDueDate handles the explicit
// null that wipes the due date.
type ActionItemPatch struct {
	Title        *string
	Description  *string
	Priority     *string
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
}

type ActionItemRepository interface {
	ListByIssue(ctx context.Context, issueID string) ([]models.ActionItem, error)
	Create(ctx context.Context, a *models.ActionItem) error
	Patch(ctx context.Context, id string, p ActionItemPatch) (*models.ActionItem, error)
	Delete(ctx context.Context, id string) error
}

type EmailTemplateRepository interface {
	// List returns defaults first, then alphabetical by name.
	List(ctx context.Context) ([]models.EmailTemplate, error)
	Get(ctx context.Context, id string) (*models.EmailTemplate, error)
	// Create and Update clear any other default in the same transaction when
	// t.IsDefault is set.
	Create(ctx context.Context, t *models.EmailTemplate) error
	Update(ctx context.Context, t *models.EmailTemplate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type EmailDraftRepository interface {
	List(ctx context.Context) ([]models.EmailDraft, error)
	// Get loads the draft with its template and linked issues.
	Get(ctx context.Context, id string) (*models.EmailDraft, error)
	// Create inserts the draft and links the given issue ids.
	Create(ctx context.Context, d *models.EmailDraft, issueIDs []string) error
}
