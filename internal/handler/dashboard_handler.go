package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/go-build-in-public/internal/port"
)

// DashboardHandler serves the read-only dashboard endpoints.
type DashboardHandler struct {
	store port.DataStore
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store port.DataStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Register sets up dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.Stats)
	router.Get("/projects", h.ListProjects)
	router.Get("/projects/:id", h.ProjectByID)
	router.Get("/projects/:id/streams/count", h.StreamCount)
	router.Get("/streams", h.ListStreams)
	router.Get("/streams/:id", h.StreamByID)
}

// Stats returns the aggregated dashboard rollup.
func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	stats, err := h.store.DashboardStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// ListProjects returns all active projects, or full details for an
// explicit ?ids=a,b,c selection.
func (h *DashboardHandler) ListProjects(c fiber.Ctx) error {
	if ids := c.Query("ids"); ids != "" {
		details, err := h.store.MultipleProjectDetails(c.Context(), strings.Split(ids, ","))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"projects": details, "count": len(details)})
	}

	projects, err := h.store.ActiveProjects(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"projects": projects, "count": len(projects)})
}

// ProjectByID returns one project's details.
func (h *DashboardHandler) ProjectByID(c fiber.Ctx) error {
	details, err := h.store.ProjectDetails(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(details)
}

// StreamCount returns the number of streams related to a project.
func (h *DashboardHandler) StreamCount(c fiber.Ctx) error {
	count, err := h.store.StreamCountForProject(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"count": count})
}

// ListStreams returns stream summaries, newest first.
func (h *DashboardHandler) ListStreams(c fiber.Ctx) error {
	streams, err := h.store.Streams(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"streams": streams, "count": len(streams)})
}

// StreamByID returns one stream with its full commit list.
func (h *DashboardHandler) StreamByID(c fiber.Ctx) error {
	stream, err := h.store.StreamByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrStreamNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "stream not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stream)
}
