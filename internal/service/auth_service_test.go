package service

import (
	"errors"
	"testing"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

func bypassConfig(t *testing.T, username, password string) config.Bypass {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return config.Bypass{Username: username, PasswordHash: hash}
}

func TestBypassLoginIssuesToken(t *testing.T) {
	svc := NewAuthService(bypassConfig(t, "deadbeef", "hunter2hunter2"), "secret")

	tok, err := svc.Login("deadbeef", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := utils.ParseJWT("secret", tok)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Username != "deadbeef" {
		t.Fatalf("expected username claim, got %q", claims.Username)
	}
}

func TestBypassLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(bypassConfig(t, "deadbeef", "hunter2hunter2"), "secret")
	if _, err := svc.Login("deadbeef", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestBypassLoginWrongUsername(t *testing.T) {
	svc := NewAuthService(bypassConfig(t, "deadbeef", "hunter2hunter2"), "secret")
	if _, err := svc.Login("someone", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestBypassLoginDisabledWithoutConfig(t *testing.T) {
	svc := NewAuthService(config.Bypass{}, "secret")
	if _, err := svc.Login("", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials when unconfigured, got %v", err)
	}
}
