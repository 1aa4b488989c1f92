package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

func emailRouter(h *EmailHTTP) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/email-templates", h.ListTemplates())
	r.Post("/api/email-templates", h.CreateTemplate())
	r.Post("/api/email-templates/init", h.InitTemplates())
	r.Get("/api/email-templates/{id}", h.GetTemplate())
	r.Put("/api/email-templates/{id}", h.UpdateTemplate())
	r.Delete("/api/email-templates/{id}", h.DeleteTemplate())
	r.Get("/api/email-drafts", h.ListDrafts())
	r.Post("/api/email-drafts", h.CreateDraft())
	r.Post("/api/email-drafts/suggest", h.SuggestDraft())
	return r
}

func newEmailHandler(tpls *mockTemplateRepo, drafts *mockDraftRepo, issues *mockIssueRepo, assist draftSuggester) http.Handler {
	return emailRouter(NewEmailHTTP(tpls, drafts, issues, assist))
}

func TestCreateDefaultTemplateKeepsSingleDefault(t *testing.T) {
	tpls := newMockTemplateRepo()
	srv := newEmailHandler(tpls, newMockDraftRepo(), newMockIssueRepo(), nil)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-templates", strings.NewReader(body)))
		return rec
	}

	if rec := post(`{"name":"first","isDefault":true}`); rec.Code != http.StatusCreated {
		t.Fatalf("create first: %d", rec.Code)
	}
	if rec := post(`{"name":"second","isDefault":true}`); rec.Code != http.StatusCreated {
		t.Fatalf("create second: %d", rec.Code)
	}

	if n := tpls.defaultCount(); n != 1 {
		t.Fatalf("expected exactly one default, got %d", n)
	}
}

func TestUpdateTemplateMovesDefault(t *testing.T) {
	tpls := newMockTemplateRepo()
	a := &models.EmailTemplate{Name: "a", IsDefault: true}
	b := &models.EmailTemplate{Name: "b"}
	if err := tpls.Create(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if err := tpls.Create(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	srv := newEmailHandler(tpls, newMockDraftRepo(), newMockIssueRepo(), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/email-templates/"+b.ID,
		strings.NewReader(`{"name":"b","isDefault":true}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if n := tpls.defaultCount(); n != 1 {
		t.Fatalf("expected exactly one default, got %d", n)
	}
	if !tpls.templates[b.ID].IsDefault {
		t.Fatalf("expected b to be the default")
	}
}

func TestCreateTemplateRequiresName(t *testing.T) {
	tpls := newMockTemplateRepo()
	srv := newEmailHandler(tpls, newMockDraftRepo(), newMockIssueRepo(), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-templates", strings.NewReader(`{"subject":"s"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out.Fields["name"]; !ok {
		t.Fatalf("expected name field error, got %v", out.Fields)
	}
}

func TestInitSeedsOnlyWhenEmpty(t *testing.T) {
	tpls := newMockTemplateRepo()
	srv := newEmailHandler(tpls, newMockDraftRepo(), newMockIssueRepo(), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-templates/init", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first init, got %d", rec.Code)
	}
	if len(tpls.templates) != 1 {
		t.Fatalf("expected one seeded template, got %d", len(tpls.templates))
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-templates/init", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on second init, got %d", rec.Code)
	}
	if len(tpls.templates) != 1 {
		t.Fatalf("expected seeding to be skipped, got %d templates", len(tpls.templates))
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	srv := newEmailHandler(newMockTemplateRepo(), newMockDraftRepo(), newMockIssueRepo(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/email-templates/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateDraftLinksIssuesAndRereads(t *testing.T) {
	issues := newMockIssueRepo()
	it := &models.Issue{Title: "Ledger sync broken", Priority: models.PriorityHigh, Status: models.StatusOpen}
	if err := issues.Create(context.Background(), it); err != nil {
		t.Fatal(err)
	}
	drafts := newMockDraftRepo()
	srv := newEmailHandler(newMockTemplateRepo(), drafts, issues, nil)

	body := `{"subject":"Weekly update","content":"hello","recipients":["ops@example.com"],"issueIds":["` + it.ID + `"]}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-drafts", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Success bool              `json:"success"`
		Draft   models.EmailDraft `json:"draft"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success")
	}
	if len(out.Draft.IssueIDs) != 1 || out.Draft.IssueIDs[0] != it.ID {
		t.Fatalf("expected linked issue %s, got %v", it.ID, out.Draft.IssueIDs)
	}
	if len(out.Draft.Recipients) != 1 || out.Draft.Recipients[0] != "ops@example.com" {
		t.Fatalf("expected recipients round-tripped, got %v", out.Draft.Recipients)
	}
}

type stubSuggester struct {
	enabled bool
	subject string
	body    string
	issues  []models.Issue
}

func (s *stubSuggester) Enabled() bool { return s.enabled }
func (s *stubSuggester) SuggestDraft(ctx context.Context, issues []models.Issue, instructions string) (string, string, error) {
	s.issues = issues
	return s.subject, s.body, nil
}

func TestSuggestDraftDisabled(t *testing.T) {
	srv := newEmailHandler(newMockTemplateRepo(), newMockDraftRepo(), newMockIssueRepo(), &stubSuggester{enabled: false})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-drafts/suggest", strings.NewReader(`{"issueIds":["x"]}`)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSuggestDraftLoadsIssues(t *testing.T) {
	issues := newMockIssueRepo()
	it := &models.Issue{Title: "VPN flapping", Priority: models.PriorityUrgent, Status: models.StatusInProgress}
	if err := issues.Create(context.Background(), it); err != nil {
		t.Fatal(err)
	}
	stub := &stubSuggester{enabled: true, subject: "VPN status", body: "we are on it"}
	srv := newEmailHandler(newMockTemplateRepo(), newMockDraftRepo(), issues, stub)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/email-drafts/suggest",
		strings.NewReader(`{"issueIds":["`+it.ID+`"]}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.issues) != 1 || stub.issues[0].Title != "VPN flapping" {
		t.Fatalf("expected issue context passed to suggester, got %+v", stub.issues)
	}
	var out struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Subject != "VPN status" || out.Content != "we are on it" {
		t.Fatalf("unexpected suggestion %+v", out)
	}
}
