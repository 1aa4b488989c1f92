package zendesk

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
)

var (
	ErrNotConfigured = errors.New("zendesk oauth is not configured")
	// ErrStateMismatch covers unknown, reused and expired state values.
	ErrStateMismatch = errors.New("unknown or expired oauth state")
)

const stateTTL = 10 * time.Minute

// OAuth drives the Zendesk authorization-code flow. Issued state values are
// kept in an expiring store and checked on callback.
type OAuth struct {
	conf   *oauth2.Config
	states *expirable.LRU[string, struct{}]
}

func NewOAuth(cfg config.Zendesk) *OAuth {
	o := &OAuth{states: expirable.NewLRU[string, struct{}](256, nil, stateTTL)}
	if !cfg.Complete() {
		return o
	}
	o.conf = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       []string{"read", "write"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.BaseURL() + "/oauth/authorizations/new",
			TokenURL: cfg.BaseURL() + "/oauth/tokens",
		},
	}
	return o
}

func (o *OAuth) Configured() bool { return o.conf != nil }

// AuthorizeURL issues a fresh state and returns the provider redirect URL.
func (o *OAuth) AuthorizeURL() (string, error) {
	if o.conf == nil {
		return "", ErrNotConfigured
	}
	state := uuid.NewString()
	o.states.Add(state, struct{}{})
	return o.conf.AuthCodeURL(state), nil
}

// Exchange verifies the state, consumes it, and trades the code for a token.
func (o *OAuth) Exchange(ctx context.Context, state, code string) (*oauth2.Token, error) {
	if o.conf == nil {
		return nil, ErrNotConfigured
	}
	if _, ok := o.states.Get(state); !ok {
		return nil, ErrStateMismatch
	}
	o.states.Remove(state)
	return o.conf.Exchange(ctx, code)
}
