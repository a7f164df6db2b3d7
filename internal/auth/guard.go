// Package auth implements the session-renewal guard shared by every
// protected endpoint.  The guard verifies the access/refresh cookie pair
// and, when only a still-active refresh token is available, mints a
// replacement access token so the request can proceed without forcing a
// new login.  All signing material is injected through Config; the guard
// never reads ambient state and keeps no state of its own between calls.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/farhanrds/scholarship-finder/internal/utils"
)

// Config carries the signing keys and the fixed access token lifetime.
// Access and refresh tokens are signed with distinct keys so a leaked
// access secret cannot be used to forge refresh tokens.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
}

// SessionStore is the durable registry of active refresh tokens.  Only
// the validation lookup is needed here; issuing and revoking sessions
// belongs to the login/logout flow.
type SessionStore interface {
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
}

// Authorization failures.  Each is terminal for the current request; the
// caller must re-authenticate.  The distinction only matters for the
// client-facing message, all three map to HTTP 401.
var (
	// ErrMustRelogin covers missing credentials and refresh tokens that
	// fail signature or expiry checks.
	ErrMustRelogin = errors.New("must relogin")
	// ErrInvalidAccess is returned when an access token is present but
	// fails verification.  There is deliberately no refresh fallback in
	// this state: a client that sends an access token is expected to send
	// a valid one.
	ErrInvalidAccess = errors.New("invalid access token")
	// ErrInvalidRefresh is returned for a well-signed refresh token that
	// has no active session record, i.e. it was revoked or never issued.
	ErrInvalidRefresh = errors.New("invalid refresh token")
)

// Result is the verdict of a successful authorization.  Renewed is
// non-nil only when the access token was minted from a refresh token on
// this request; the caller should hand it back to the client as an
// HTTP-only cookie.
type Result struct {
	Claims  utils.TokenClaims
	Renewed *utils.SignedToken
}

// Guard is a stateless verifier/rotator of the two-token session
// credential.  It is safe for concurrent use.
type Guard struct {
	cfg   Config
	store SessionStore
}

func NewGuard(cfg Config, store SessionStore) *Guard {
	return &Guard{cfg: cfg, store: store}
}

// Authorize runs the verification state machine over whichever tokens the
// request carried.  Empty strings mean the corresponding cookie was absent.
//
//	neither token            -> ErrMustRelogin
//	access present, valid    -> authenticated, no renewal
//	access present, invalid  -> ErrInvalidAccess
//	access absent, refresh present:
//	    signature/expiry bad     -> ErrMustRelogin
//	    no active session row    -> ErrInvalidRefresh
//	    active                   -> authenticated + fresh access token
//
// Renewal does not touch the session store: the refresh token stays
// reusable until its own expiry or explicit revocation at logout.
func (g *Guard) Authorize(ctx context.Context, accessToken, refreshToken string) (Result, error) {
	if accessToken == "" && refreshToken == "" {
		return Result{}, ErrMustRelogin
	}

	if accessToken != "" {
		claims, err := utils.ParseToken(g.cfg.AccessSecret, accessToken)
		if err != nil {
			return Result{}, ErrInvalidAccess
		}
		return Result{Claims: claims}, nil
	}

	// Access absent, refresh present: verify the token itself before the
	// session store is consulted.
	claims, err := utils.ParseToken(g.cfg.RefreshSecret, refreshToken)
	if err != nil {
		return Result{}, ErrMustRelogin
	}
	if _, err := g.store.ValidateRefresh(ctx, utils.HashRefreshRaw(refreshToken)); err != nil {
		return Result{}, ErrInvalidRefresh
	}

	renewed, err := utils.NewSignedToken(g.cfg.AccessSecret, claims, g.cfg.AccessTTL)
	if err != nil {
		return Result{}, err
	}
	return Result{Claims: claims, Renewed: &renewed}, nil
}
