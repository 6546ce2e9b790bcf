// Package utils provides helpers for access token issuance and
// password hashing.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

// AccessToken is a signed HS256 JWT along with its expiry.  The token
// is carried in the Authorization header on protected endpoints.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  Claims
// carry the subject (user id), role, name and email so protected
// handlers can echo the sanitized user without a lookup.
func NewAccessToken(secret string, u model.User, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"role":  u.Role,
		"name":  u.Name,
		"email": u.Email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
