package authx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenClaims are the claims the backend places in the tokens it issues.
type TokenClaims struct {
	// Subject is the username.
	Subject  string `json:"subject"`
	UserID   int64  `json:"userId,omitempty"`
	UserType string `json:"userType,omitempty"`
	Role     string `json:"role,omitempty"`
	// ExpiresAt is nil if the token doesn't say when it expires.
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired returns true if the token carries an expiry that has passed as of
// now.
func (t TokenClaims) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}

// InspectToken decodes the claims of a token WITHOUT verifying its signature.
// The backend alone can validate a token; this is for display purposes only.
func InspectToken(raw string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenClaims{}, errors.Wrap(err, "error parsing token")
	}
	tc := TokenClaims{}
	tc.Subject, _ = claims.GetSubject()
	switch userID := claims["userId"].(type) {
	case float64:
		tc.UserID = int64(userID)
	case string:
		tc.UserID, _ = strconv.ParseInt(userID, 10, 64)
	}
	tc.UserType, _ = claims["userType"].(string)
	tc.Role, _ = claims["role"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenClaims{}, errors.Wrap(err, "error reading token expiry")
	}
	if exp != nil {
		t := exp.Time
		tc.ExpiresAt = &t
	}
	return tc, nil
}
