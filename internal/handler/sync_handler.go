package handler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/go-build-in-public/internal/service"
)

// RunStatus is the recorded outcome of the most recent sync invocation.
type RunStatus struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Report     *service.SyncReport `json:"report,omitempty"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
}

// SyncHandler exposes the scheduled-trigger route and the last-run status.
type SyncHandler struct {
	sync *service.SyncService

	mu      sync.Mutex
	lastRun *RunStatus
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(s *service.SyncService) *SyncHandler {
	return &SyncHandler{sync: s}
}

// Run executes one sync pass. The caller only sees overall success or
// failure; per-project failures stay in the logs and the report counters.
func (h *SyncHandler) Run(c fiber.Ctx) error {
	started := time.Now()
	report, err := h.sync.Run(c.Context())
	finished := time.Now()

	if err != nil {
		slog.Error("sync run failed", "error", err)
		h.record(&RunStatus{
			Success:    false,
			Message:    err.Error(),
			StartedAt:  started,
			FinishedAt: finished,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	h.record(&RunStatus{
		Success:    true,
		Message:    "sync complete",
		Report:     report,
		StartedAt:  started,
		FinishedAt: finished,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "sync complete",
		"report":  report,
	})
}

// Status returns the outcome of the most recent run.
func (h *SyncHandler) Status(c fiber.Ctx) error {
	h.mu.Lock()
	last := h.lastRun
	h.mu.Unlock()

	if last == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no sync has run yet"})
	}
	return c.JSON(last)
}

func (h *SyncHandler) record(status *RunStatus) {
	h.mu.Lock()
	h.lastRun = status
	h.mu.Unlock()
}
