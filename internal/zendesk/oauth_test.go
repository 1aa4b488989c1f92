package zendesk

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
)

func testConfig() config.Zendesk {
	return config.Zendesk{
		Subdomain:    "acme",
		ClientID:     "hub-client",
		ClientSecret: "shh",
		RedirectURI:  "https://hub.example.com/api/zendesk/oauth/callback",
	}
}

func TestAuthorizeURLUnconfigured(t *testing.T) {
	o := NewOAuth(config.Zendesk{})
	if o.Configured() {
		t.Fatalf("expected unconfigured")
	}
	if _, err := o.AuthorizeURL(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAuthorizeURLCarriesState(t *testing.T) {
	o := NewOAuth(testConfig())

	raw, err := o.AuthorizeURL()
	if err != nil {
		t.Fatalf("authorize url: %v", err)
	}
	if !strings.HasPrefix(raw, "https://acme.zendesk.com/oauth/authorizations/new") {
		t.Fatalf("unexpected authorize endpoint: %s", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("client_id") != "hub-client" {
		t.Fatalf("expected client_id, got %q", q.Get("client_id"))
	}
	state := q.Get("state")
	if state == "" {
		t.Fatalf("expected a state parameter")
	}
	if _, ok := o.states.Get(state); !ok {
		t.Fatalf("expected state to be stored for verification")
	}
}

func TestAuthorizeURLStatesAreUnique(t *testing.T) {
	o := NewOAuth(testConfig())
	a, _ := o.AuthorizeURL()
	b, _ := o.AuthorizeURL()
	if a == b {
		t.Fatalf("expected distinct state per authorize call")
	}
}

func TestExchangeRejectsUnknownState(t *testing.T) {
	o := NewOAuth(testConfig())
	if _, err := o.Exchange(context.Background(), "never-issued", "code"); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("expected ErrStateMismatch, got %v", err)
	}
}
