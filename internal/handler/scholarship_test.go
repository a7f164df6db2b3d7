package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanrds/scholarship-finder/internal/auth"
	"github.com/farhanrds/scholarship-finder/internal/middleware"
	"github.com/farhanrds/scholarship-finder/internal/model"
	"github.com/farhanrds/scholarship-finder/internal/repository"
	"github.com/farhanrds/scholarship-finder/internal/utils"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

// fakeStore is an in-memory ScholarshipStore recording mutations.
type fakeStore struct {
	items   map[uint64]model.Scholarship
	nextID  uint64
	deleted []uint64
}

func newFakeStore(items ...model.Scholarship) *fakeStore {
	f := &fakeStore{items: map[uint64]model.Scholarship{}, nextID: 1}
	for _, s := range items {
		f.items[s.ID] = s
		if s.ID >= f.nextID {
			f.nextID = s.ID + 1
		}
	}
	return f
}

func (f *fakeStore) Create(_ context.Context, s *model.Scholarship) error {
	s.ID = f.nextID
	f.nextID++
	f.items[s.ID] = *s
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (model.Scholarship, error) {
	s, ok := f.items[id]
	if !ok {
		return model.Scholarship{}, repository.ErrScholarshipNotFound
	}
	return s, nil
}

func (f *fakeStore) GetAll(_ context.Context) ([]model.Scholarship, error) {
	out := []model.Scholarship{}
	for _, s := range f.items {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id uint64, patch map[string]any) (model.Scholarship, error) {
	s, ok := f.items[id]
	if !ok {
		return model.Scholarship{}, repository.ErrScholarshipNotFound
	}
	if v, ok := patch["name"].(string); ok {
		s.Name = v
	}
	f.items[id] = s
	return s, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrScholarshipNotFound
	}
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeSessions implements auth.SessionStore for the middleware tests.
type fakeSessions struct{ active map[string]uint64 }

var errNoSession = errors.New("no session")

func (f *fakeSessions) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	if id, ok := f.active[hash]; ok {
		return id, nil
	}
	return 0, errNoSession
}

func testGuard(store auth.SessionStore) *auth.Guard {
	return auth.NewGuard(auth.Config{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		AccessTTL:     5 * time.Minute,
	}, store)
}

func fullCreateBody() map[string]any {
	return map[string]any{
		"name":         "LPDP",
		"university":   "MIT",
		"description":  "Full ride",
		"country":      "USA",
		"city":         "Cambridge",
		"major":        "Computer Science",
		"email":        "contact@mit.edu",
		"degrees":      "S2,S3",
		"funding_type": "fully_funded",
		"open_date":    "2026-01-01",
		"close_date":   "2026-06-30",
	}
}

func jsonRequest(t *testing.T, method, target string, body map[string]any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// guardedServer builds an Echo instance with the scholarship routes behind
// the real session middleware, mirroring the production wiring.
func guardedServer(store ScholarshipStore, sessions auth.SessionStore) *echo.Echo {
	e := echo.New()
	h := NewScholarshipHandler(store, nil)
	session := middleware.Session(testGuard(sessions))
	g := e.Group("/v1/scholarships")
	g.Use(session)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("", h.GetAll)
	g.GET("/:id", h.GetByID)
	return e
}

func TestCreateMissingEmailField(t *testing.T) {
	body := fullCreateBody()
	delete(body, "email")

	store := newFakeStore()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(t, http.MethodPost, "/v1/scholarships", body), rec)

	require.NoError(t, NewScholarshipHandler(store, nil).Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "The email field is required."}`, rec.Body.String())
	assert.Empty(t, store.items, "no record may be created on validation failure")
}

func TestCreateReportsFirstMissingField(t *testing.T) {
	// With both university and email missing, university is declared
	// earlier and must be the one reported.
	body := fullCreateBody()
	delete(body, "university")
	delete(body, "email")

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(t, http.MethodPost, "/v1/scholarships", body), rec)

	require.NoError(t, NewScholarshipHandler(newFakeStore(), nil).Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "The university field is required."}`, rec.Body.String())
}

func TestCreateEmptyStringCountsAsMissing(t *testing.T) {
	body := fullCreateBody()
	body["city"] = ""

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(t, http.MethodPost, "/v1/scholarships", body), rec)

	require.NoError(t, NewScholarshipHandler(newFakeStore(), nil).Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "The city field is required."}`, rec.Body.String())
}

func TestCreateWithRefreshRenewal(t *testing.T) {
	// Access token absent, refresh token valid and active: the response
	// must carry a new accessToken cookie and the create must proceed.
	claims := utils.TokenClaims{ID: 7, Name: "Siti", Email: "siti@example.com"}
	refresh, err := utils.NewSignedToken(testRefreshSecret, claims, 24*time.Hour)
	require.NoError(t, err)
	sessions := &fakeSessions{active: map[string]uint64{utils.HashRefreshRaw(refresh.Token): 7}}

	store := newFakeStore()
	e := guardedServer(store, sessions)

	req := jsonRequest(t, http.MethodPost, "/v1/scholarships", fullCreateBody())
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: refresh.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, store.items, 1)

	var renewed *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.AccessCookie {
			renewed = ck
		}
	}
	require.NotNil(t, renewed, "response must set a renewed accessToken cookie")
	assert.True(t, renewed.HttpOnly)
	got, err := utils.ParseToken(testAccessSecret, renewed.Value)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestDeleteWithoutTokens(t *testing.T) {
	store := newFakeStore(model.Scholarship{ID: 4, Name: "LPDP"})
	e := guardedServer(store, &fakeSessions{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/scholarships/4", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message": "Need to relogin"}`, rec.Body.String())
	assert.Empty(t, store.deleted, "record must not be deleted")
}

func TestDeleteWithValidAccessToken(t *testing.T) {
	access, err := utils.NewSignedToken(testAccessSecret,
		utils.TokenClaims{ID: 7, Name: "Siti", Email: "siti@example.com"}, 5*time.Minute)
	require.NoError(t, err)

	store := newFakeStore(model.Scholarship{ID: 4, Name: "LPDP"})
	e := guardedServer(store, &fakeSessions{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/scholarships/4", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookie, Value: access.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint64{4}, store.deleted)
}

func TestUpdateNotFound(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(t, http.MethodPut, "/", map[string]any{"name": "New"}), rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, NewScholarshipHandler(newFakeStore(), nil).Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Scholarship not found"}`, rec.Body.String())
}

func TestUpdatePartialMerge(t *testing.T) {
	store := newFakeStore(model.Scholarship{ID: 1, Name: "Old", University: "MIT"})
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(t, http.MethodPut, "/", map[string]any{"name": "New"}), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, NewScholarshipHandler(store, nil).Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", store.items[1].Name)
	assert.Equal(t, "MIT", store.items[1].University, "untouched fields keep their value")
}
