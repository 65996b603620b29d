// Package identity extracts the display-role signal from the session
// token. The claims are decoded without signature verification: the value
// only gates which UI sections render, never access. The backend checks
// the signature and enforces authorization on every request.
package identity

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)

type Claims struct {
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

var ErrNoRole = errors.New("token carries no role claim")

// FromToken decodes the token's role and full-name claims. An empty or
// malformed token is not an error condition worth failing startup over;
// callers fall back to the configured role.
func FromToken(token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, ErrNoRole
	}

	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Claims{}, err
	}
	if claims.Role == "" {
		return Claims{}, ErrNoRole
	}
	claims.Role = NormalizeRole(claims.Role)
	return claims, nil
}

// NormalizeRole maps any role spelling onto the binary display partition:
// anything that is not HR renders the employee view.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleHR) {
		return RoleHR
	}
	return RoleEmployee
}
