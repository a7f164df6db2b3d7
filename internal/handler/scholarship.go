package handler // handler package contains scholarship CRUD handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farhanrds/scholarship-finder/internal/model"
	"github.com/farhanrds/scholarship-finder/internal/queue"
	"github.com/farhanrds/scholarship-finder/internal/repository"
)

// EventPublisher pushes scholarship lifecycle events to the broker.
// Publishing is best effort: a broker outage must never fail the request.
type EventPublisher interface {
	PublishScholarshipEvent(ctx context.Context, ev queue.ScholarshipEvent) error
}

// ScholarshipStore is the catalog surface the CRUD handlers depend on.
// *repository.ScholarshipRepo satisfies it; tests substitute fakes.
type ScholarshipStore interface {
	Create(ctx context.Context, s *model.Scholarship) error
	GetByID(ctx context.Context, id uint64) (model.Scholarship, error)
	GetAll(ctx context.Context) ([]model.Scholarship, error)
	Update(ctx context.Context, id uint64, patch map[string]any) (model.Scholarship, error)
	Delete(ctx context.Context, id uint64) error
}

// ScholarshipHandler bundles dependencies for the CRUD endpoints.  Every
// route it serves sits behind the session middleware.
type ScholarshipHandler struct {
	Repo   ScholarshipStore
	Events EventPublisher // may be nil when no broker is configured
}

func NewScholarshipHandler(repo ScholarshipStore, events EventPublisher) *ScholarshipHandler {
	return &ScholarshipHandler{Repo: repo, Events: events}
}

// requiredFields lists every field a create request must carry, in the
// order they are validated.  The first missing one is reported by name.
var requiredFields = []string{
	"name",
	"university",
	"description",
	"country",
	"city",
	"major",
	"email",
	"degrees",
	"funding_type",
	"open_date",
	"close_date",
}

// firstMissingField returns the name of the first required field that is
// absent or empty in the body, or "" when all are present.
func firstMissingField(body map[string]any) string {
	for _, f := range requiredFields {
		v, ok := body[f]
		if !ok || v == nil {
			return f
		}
		if s, isStr := v.(string); isStr && s == "" {
			return f
		}
	}
	return ""
}

func str(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func (h *ScholarshipHandler) publish(action string, s model.Scholarship) {
	if h.Events == nil {
		return
	}
	// Fire and forget with its own deadline; the request is already done.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Events.PublishScholarshipEvent(ctx, queue.NewScholarshipEvent(action, s))
	}()
}

// Create handles POST /v1/scholarships.  All required fields must be
// present; the first missing one aborts with a 400 naming the field and
// nothing is written.
func (h *ScholarshipHandler) Create(c echo.Context) error {
	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if missing := firstMissingField(body); missing != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("The %s field is required.", missing),
		})
	}

	s := model.Scholarship{
		Name:        str(body, "name"),
		University:  str(body, "university"),
		Description: str(body, "description"),
		Country:     str(body, "country"),
		City:        str(body, "city"),
		Major:       str(body, "major"),
		Email:       str(body, "email"),
		Degrees:     str(body, "degrees"),
		FundingType: str(body, "funding_type"),
		OpenDate:    str(body, "open_date"),
		CloseDate:   str(body, "close_date"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create the scholarship."})
	}
	h.publish("created", s)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "New Scholarship created successfully",
		"data":    echo.Map{"id": s.ID},
	})
}

// Update handles PUT /v1/scholarships/:id with partial-merge semantics:
// only the fields present in the body are changed.
func (h *ScholarshipHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Repo.Update(ctx, id, body)
	if err != nil {
		if errors.Is(err, repository.ErrScholarshipNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Scholarship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Server error",
			"details": err.Error(),
		})
	}
	h.publish("updated", updated)

	return c.JSON(http.StatusOK, echo.Map{
		"message":            "Scholarship updated successfully",
		"updatedScholarship": updated,
	})
}

// GetByID handles GET /v1/scholarships/:id.
func (h *ScholarshipHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScholarshipNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Scholarship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get data"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": s})
}

// GetAll handles GET /v1/scholarships.
func (h *ScholarshipHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Repo.GetAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get data"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Delete handles DELETE /v1/scholarships/:id.  It sits behind the same
// session guard as every other write, so an expired access token with a
// live refresh session still works here.
func (h *ScholarshipHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Fetch first so the delete event can carry the record.
	s, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScholarshipNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Scholarship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete data"})
	}
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScholarshipNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Scholarship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete data"})
	}
	h.publish("deleted", s)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Scholarship deleted successfully",
		"data":    echo.Map{"id": id},
	})
}
