package router

import (
	"github.com/labstack/echo/v4"

	"github.com/farhanrds/scholarship-finder/internal/handler"
)

// RegisterScholarships wires the scholarship CRUD and matching endpoints.
// Every route, including delete, sits behind the same session middleware
// so the access/refresh renewal behaves identically across endpoints.
// The extras slice carries read-path middleware (response cache, rate
// limiter); it is applied only to the GET endpoints because cached writes
// would serve stale mutations.
func RegisterScholarships(e *echo.Echo, s *handler.ScholarshipHandler, m *handler.MatchHandler, session echo.MiddlewareFunc, extras ...echo.MiddlewareFunc) {
	g := e.Group("/v1/scholarships")
	g.Use(session)

	g.POST("", s.Create)
	g.PUT("/:id", s.Update)
	g.DELETE("/:id", s.Delete)
	g.GET("", s.GetAll, extras...)
	g.GET("/:id", s.GetByID, extras...)

	// Matching: profile + filtered candidates scored by the AI service.
	g.POST("/match", m.Match)
}
