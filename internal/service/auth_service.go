package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks the bypass-credential pair used to skip interactive
// Azure AD login during testing. Real logins never touch this code path.
type AuthService struct {
	bypass        config.Bypass
	sessionSecret string
}

func NewAuthService(bypass config.Bypass, sessionSecret string) *AuthService {
	return &AuthService{bypass: bypass, sessionSecret: sessionSecret}
}

func (a *AuthService) Login(username, password string) (string, error) {
	if a.bypass.Username == "" || a.bypass.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.bypass.Username)) != 1 {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(a.bypass.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return utils.SignJWT(a.sessionSecret, username, 24*time.Hour)
}
