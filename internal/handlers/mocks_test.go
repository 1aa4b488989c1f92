package handlers

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
)

// -----------------------------------------------------------------------------
// Mock repositories
// -----------------------------------------------------------------------------

type mockIssueRepo struct {
	issues       map[string]*models.Issue
	listStatuses [][]string
	createErr    error
	nextID       int
}

func newMockIssueRepo() *mockIssueRepo {
	return &mockIssueRepo{issues: map[string]*models.Issue{}}
}

func (m *mockIssueRepo) List(ctx context.Context, statuses []string) ([]models.Issue, error) {
	m.listStatuses = append(m.listStatuses, statuses)
	var out []models.Issue
	for _, it := range m.issues {
		for _, s := range statuses {
			if it.Status == s && !it.Archived {
				out = append(out, *it)
				break
			}
		}
	}
	return out, nil
}

func (m *mockIssueRepo) Get(ctx context.Context, id string) (*models.Issue, error) {
	it, ok := m.issues[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *mockIssueRepo) Create(ctx context.Context, i *models.Issue) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	i.ID = "issue-" + itoa(m.nextID)
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	cp := *i
	m.issues[i.ID] = &cp
	return nil
}

func (m *mockIssueRepo) Update(ctx context.Context, i *models.Issue) error {
	if _, ok := m.issues[i.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *i
	m.issues[i.ID] = &cp
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

type mockCounter struct {
	calls int
}

func (m *mockCounter) CountOpen(ctx context.Context) (int, error) {
	m.calls++
	return 3, nil
}
func (m *mockCounter) CountResolvedSince(ctx context.Context, since time.Time) (int, error) {
	return 1, nil
}
func (m *mockCounter) CountOpenByPriorities(ctx context.Context, prios []string) (int, error) {
	return 2, nil
}

type mockNoteRepo struct {
	notes     map[string]*models.Note
	created   []*models.Note
	createErr error
	nextID    int
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: map[string]*models.Note{}}
}

func (m *mockNoteRepo) ListByIssue(ctx context.Context, issueID string) ([]models.Note, error) {
	var out []models.Note
	for _, n := range m.notes {
		if n.IssueID == issueID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNoteRepo) Get(ctx context.Context, id string) (*models.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *mockNoteRepo) Create(ctx context.Context, n *models.Note) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	n.ID = "note-" + itoa(m.nextID)
	n.CreatedAt = time.Now()
	cp := *n
	m.notes[n.ID] = &cp
	m.created = append(m.created, &cp)
	return nil
}

type mockAttachmentRepo struct {
	attachments map[string]*models.Attachment
	nextID      int
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{attachments: map[string]*models.Attachment{}}
}

func (m *mockAttachmentRepo) Get(ctx context.Context, id string) (*models.Attachment, error) {
	a, ok := m.attachments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockAttachmentRepo) Create(ctx context.Context, a *models.Attachment) error {
	m.nextID++
	a.ID = "att-" + itoa(m.nextID)
	a.Status = models.AttachmentUploading
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.attachments[a.ID] = &cp
	return nil
}

func (m *mockAttachmentRepo) SetUploaded(ctx context.Context, id, storageKey string) error {
	a, ok := m.attachments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.StorageKey = storageKey
	a.Status = models.AttachmentAvailable
	return nil
}

func (m *mockAttachmentRepo) SetStatus(ctx context.Context, id, status string) error {
	a, ok := m.attachments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

type mockActionItemRepo struct {
	items      map[string]*models.ActionItem
	lastPatch  *repository.ActionItemPatch
	patchErr   error
	deleteErr  error
	deletedIDs []string
	nextID     int
}

func newMockActionItemRepo() *mockActionItemRepo {
	return &mockActionItemRepo{items: map[string]*models.ActionItem{}}
}

func (m *mockActionItemRepo) ListByIssue(ctx context.Context, issueID string) ([]models.ActionItem, error) {
	var out []models.ActionItem
	for _, a := range m.items {
		if a.IssueID == issueID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockActionItemRepo) Create(ctx context.Context, a *models.ActionItem) error {
	m.nextID++
	a.ID = "item-" + itoa(m.nextID)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockActionItemRepo) Patch(ctx context.Context, id string, p repository.ActionItemPatch) (*models.ActionItem, error) {
	m.lastPatch = &p
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	a, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.Completed != nil {
		a.Completed = *p.Completed
	}
	if p.ClearDueDate {
		a.DueDate = nil
	} else if p.DueDate != nil {
		a.DueDate = p.DueDate
	}
	cp := *a
	return &cp, nil
}

func (m *mockActionItemRepo) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type mockTemplateRepo struct {
	templates map[string]*models.EmailTemplate
	nextID    int
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: map[string]*models.EmailTemplate{}}
}

func (m *mockTemplateRepo) List(ctx context.Context) ([]models.EmailTemplate, error) {
	var out []models.EmailTemplate
	for _, t := range m.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTemplateRepo) Get(ctx context.Context, id string) (*models.EmailTemplate, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTemplateRepo) clearDefaults(exceptID string) {
	for _, t := range m.templates {
		if t.ID != exceptID {
			t.IsDefault = false
		}
	}
}

func (m *mockTemplateRepo) Create(ctx context.Context, t *models.EmailTemplate) error {
	m.nextID++
	t.ID = "tpl-" + itoa(m.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	if t.IsDefault {
		m.clearDefaults(t.ID)
	}
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *mockTemplateRepo) Update(ctx context.Context, t *models.EmailTemplate) error {
	if _, ok := m.templates[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	if t.IsDefault {
		m.clearDefaults(t.ID)
	}
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.templates[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.templates, id)
	return nil
}

func (m *mockTemplateRepo) Count(ctx context.Context) (int, error) {
	return len(m.templates), nil
}

func (m *mockTemplateRepo) defaultCount() int {
	n := 0
	for _, t := range m.templates {
		if t.IsDefault {
			n++
		}
	}
	return n
}

type mockDraftRepo struct {
	drafts map[string]*models.EmailDraft
	links  map[string][]string
	nextID int
}

func newMockDraftRepo() *mockDraftRepo {
	return &mockDraftRepo{drafts: map[string]*models.EmailDraft{}, links: map[string][]string{}}
}

func (m *mockDraftRepo) List(ctx context.Context) ([]models.EmailDraft, error) {
	var out []models.EmailDraft
	for _, d := range m.drafts {
		cp := *d
		cp.IssueIDs = m.links[d.ID]
		out = append(out, cp)
	}
	return out, nil
}

func (m *mockDraftRepo) Get(ctx context.Context, id string) (*models.EmailDraft, error) {
	d, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.IssueIDs = m.links[id]
	return &cp, nil
}

func (m *mockDraftRepo) Create(ctx context.Context, d *models.EmailDraft, issueIDs []string) error {
	m.nextID++
	d.ID = "draft-" + itoa(m.nextID)
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.drafts[d.ID] = &cp
	m.links[d.ID] = issueIDs
	return nil
}

// -----------------------------------------------------------------------------
// Mock blob store
// -----------------------------------------------------------------------------

type mockBlobStore struct {
	uploads   map[string][]byte
	uploadErr error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{uploads: map[string][]byte{}}
}

func (m *mockBlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.uploads[key] = b
	return nil
}

func (m *mockBlobStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b, ok := m.uploads[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
