package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farhanrds/scholarship-finder/internal/match"
	"github.com/farhanrds/scholarship-finder/internal/model"
	"github.com/farhanrds/scholarship-finder/internal/repository"
)

// MatchHandler exposes the AI matching endpoint.
type MatchHandler struct {
	Orchestrator *match.Orchestrator
}

func NewMatchHandler(o *match.Orchestrator) *MatchHandler {
	return &MatchHandler{Orchestrator: o}
}

type matchReq struct {
	Country     string `json:"country"`
	Major       string `json:"major"`
	Degrees     string `json:"degrees"`
	FundingType string `json:"funding_type"`
	Email       string `json:"email"`
}

// Match handles POST /v1/scholarships/match: it looks up the profile by
// email, filters the catalog and returns the scored result.  Fault
// mapping: missing profile -> 404, scorer failure -> 502, anything else
// -> 500 with a generic message.
func (h *MatchHandler) Match(c echo.Context) error {
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "The email field is required."})
	}

	// No extra timeout wrapper here: the scorer applies its own deadline
	// and the DB lookups inherit the request context.
	result, err := h.Orchestrator.Match(c.Request().Context(), req.Email, model.ScholarshipFilter{
		Country:     req.Country,
		Major:       req.Major,
		Degrees:     req.Degrees,
		FundingType: req.FundingType,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		case errors.Is(err, match.ErrUpstream):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "An error occurred while processing your request."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while processing your request."})
		}
	}
	return c.JSON(http.StatusOK, result)
}
