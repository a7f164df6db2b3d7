package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256" // SHA‑256 hashing for refresh token storage
	"encoding/hex"  // hex encoding for digests
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// TokenClaims is the payload carried by both access and refresh tokens:
// the authenticated user's id, display name and email.  The same claim
// shape is used for both token kinds; only the signing key and TTL differ.
type TokenClaims struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignedToken represents a signed JWT along with its expiry.  The Token
// field contains the JWT string.  Exp stores the expiration timestamp as
// a time.Time.  Access tokens are short‑lived and travel in an HTTP-only
// cookie; refresh tokens are longer‑lived and additionally recorded in
// the refresh_tokens table.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by ParseToken for any signature, expiry or
// claim-shape failure.  Callers do not need to distinguish the cause.
var ErrInvalidToken = errors.New("invalid token")

// NewSignedToken builds and signs an HS256 JWT carrying the given claims.
// It takes the signing secret and the token lifetime.  The JWT includes
// the user claims plus standard expiration (exp) and issued at (iat)
// timestamps.
func NewSignedToken(secret string, c TokenClaims, ttl time.Duration) (SignedToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"id":    c.ID,
		"name":  c.Name,
		"email": c.Email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// ParseToken verifies the signature and expiry of a token and returns its
// claims.  The signing method must be HMAC; tokens signed with any other
// algorithm are rejected.  Expired tokens fail verification through the
// jwt library's registered claim validation.
func ParseToken(secret, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	out := TokenClaims{}
	// Numeric JSON values decode as float64.
	if v, ok := claims["id"].(float64); ok {
		out.ID = uint64(v)
	}
	if v, ok := claims["name"].(string); ok {
		out.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if out.ID == 0 || out.Email == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	return out, nil
}

// HashRefreshRaw returns the SHA‑256 hash of the raw refresh token as a hex
// string.  Storing only the hash in the database prevents attackers from
// using stolen database entries to refresh sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
