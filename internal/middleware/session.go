package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http" // HTTP status codes and cookie type

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/farhanrds/scholarship-finder/internal/auth"
	"github.com/farhanrds/scholarship-finder/internal/utils"
)

// Cookie names used by the login flow and consumed by the guard.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// claimsKey is the context key under which the verified claims are stored.
const claimsKey = "claims"

// Session returns an Echo middleware that runs the token guard over the
// accessToken/refreshToken cookies.  On success the verified claims are
// injected into the request context; when the guard minted a replacement
// access token it is attached to the response as an HTTP-only cookie so
// the browser session renews transparently.  This middleware should wrap
// every route that mutates or reads scholarship data.
func Session(g *auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res, err := g.Authorize(c.Request().Context(),
				cookieValue(c, AccessCookie), cookieValue(c, RefreshCookie))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": guardMessage(err)})
			}
			if res.Renewed != nil {
				c.SetCookie(&http.Cookie{
					Name:     AccessCookie,
					Value:    res.Renewed.Token,
					Expires:  res.Renewed.Exp,
					Path:     "/",
					HttpOnly: true,
				})
			}
			c.Set(claimsKey, res.Claims)
			return next(c)
		}
	}
}

// guardMessage translates guard errors into the client-facing 401 bodies.
// Everything unrecognized collapses into the relogin message so internal
// details never leak.
func guardMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidAccess):
		return "Invalid access token. Please relogin."
	case errors.Is(err, auth.ErrInvalidRefresh):
		return "Invalid refresh token. Please relogin."
	default:
		return "Need to relogin"
	}
}

// cookieValue reads a cookie by name, returning "" when absent.
func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil || ck == nil {
		return ""
	}
	return ck.Value
}

// ClaimsFrom extracts the verified claims stored by Session.  The second
// return value is false when the route was not guarded.
func ClaimsFrom(c echo.Context) (utils.TokenClaims, bool) {
	v := c.Get(claimsKey)
	claims, ok := v.(utils.TokenClaims)
	return claims, ok
}
