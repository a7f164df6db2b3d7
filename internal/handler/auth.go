package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL sentinel errors
	"net/http"     // HTTP status codes and cookie type
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls and token lifetimes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/farhanrds/scholarship-finder/internal/config"     // app configuration
	"github.com/farhanrds/scholarship-finder/internal/middleware" // cookie names + claims accessor
	"github.com/farhanrds/scholarship-finder/internal/repository" // DB repositories
	"github.com/farhanrds/scholarship-finder/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// setSessionCookies attaches both tokens as HTTP-only cookies; the browser
// front end never reads them from script.
func setSessionCookies(c echo.Context, access, refresh utils.SignedToken) {
	c.SetCookie(&http.Cookie{
		Name: middleware.AccessCookie, Value: access.Token,
		Expires: access.Exp, Path: "/", HttpOnly: true,
	})
	c.SetCookie(&http.Cookie{
		Name: middleware.RefreshCookie, Value: refresh.Token,
		Expires: refresh.Exp, Path: "/", HttpOnly: true,
	})
}

// issueSession mints the access/refresh pair for a user and records the
// refresh token hash as an active session row.
func (h *AuthHandler) issueSession(ctx context.Context, id uint64, name, email string) (utils.SignedToken, utils.SignedToken, error) {
	claims := utils.TokenClaims{ID: id, Name: name, Email: email}
	access, err := utils.NewSignedToken(h.Cfg.AccessSecret, claims,
		time.Duration(h.Cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return utils.SignedToken{}, utils.SignedToken{}, err
	}
	refresh, err := utils.NewSignedToken(h.Cfg.RefreshSecret, claims,
		time.Duration(h.Cfg.RefreshTTLDays)*24*time.Hour)
	if err != nil {
		return utils.SignedToken{}, utils.SignedToken{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, id, utils.HashRefreshRaw(refresh.Token), refresh.Exp); err != nil {
		return utils.SignedToken{}, utils.SignedToken{}, err
	}
	return access, refresh, nil
}

// Register: create user and start a session immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, refresh, err := h.issueSession(ctx, uid, req.Name, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookies(c, access, refresh)

	return c.JSON(http.StatusCreated, echo.Map{
		"user": userPart{ID: uid, Name: req.Name, Email: req.Email},
	})
}

// Login: verify credentials and set a fresh cookie pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, refresh, err := h.issueSession(ctx, u.ID, u.Name, u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookies(c, access, refresh)

	return c.JSON(http.StatusOK, echo.Map{
		"user": userPart{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// Logout revokes the refresh session carried by the cookie and clears both
// cookies.  A missing or unknown refresh cookie still clears the cookies;
// logging out twice is not an error worth surfacing.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if ck, err := c.Cookie(middleware.RefreshCookie); err == nil && ck.Value != "" {
		_ = h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(ck.Value))
	}
	// Expire both cookies client-side.
	for _, name := range []string{middleware.AccessCookie, middleware.RefreshCookie} {
		c.SetCookie(&http.Cookie{
			Name: name, Value: "", Path: "/", HttpOnly: true,
			Expires: time.Unix(0, 0), MaxAge: -1,
		})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me: simple protected endpoint returning the verified claims.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Need to relogin"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user": userPart{ID: claims.ID, Name: claims.Name, Email: claims.Email},
	})
}
