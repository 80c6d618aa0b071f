package port

import (
	"context"
	"time"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
)

// DataStore abstracts the backing document store. The write side is limited
// to the two reconciliation upserts; projects, revenue and costs are only
// ever written by the operator.
//
// The upserts enforce at-most-one-record-per-key through read-before-write:
// the store exposes no conditional-write primitive, so two concurrent sync
// runs can both observe "not found" and create duplicates. The job is
// expected to run as a single low-frequency scheduled invocation.
type DataStore interface {
	// ActiveProjects returns all projects with active status.
	ActiveProjects(ctx context.Context) ([]domain.Project, error)

	// DashboardStats recomputes the aggregate rollup over active projects.
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)

	// ProjectDetails returns one project with its financials and metrics,
	// or ErrProjectNotFound.
	ProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetails, error)

	// MultipleProjectDetails returns details for the given ids, skipping
	// ids that do not resolve to a project.
	MultipleProjectDetails(ctx context.Context, projectIDs []string) ([]domain.ProjectDetails, error)

	// Streams returns all recorded streams, newest first.
	Streams(ctx context.Context) ([]domain.StreamSummary, error)

	// StreamByID returns one stream with its commit list, or ErrStreamNotFound.
	StreamByID(ctx context.Context, id string) (*domain.Stream, error)

	// StreamCountForProject counts streams related to a project.
	StreamCountForProject(ctx context.Context, projectID string) (int, error)

	// LatestStreamEnd returns the end time of the most recently recorded
	// stream, or the zero time when no streams exist.
	LatestStreamEnd(ctx context.Context) (time.Time, error)

	// UpsertMetric writes a (project, name) metric value, updating the
	// existing record when one exists and creating it otherwise.
	UpsertMetric(ctx context.Context, projectID, name string, value float64) error

	// UpsertStream writes a stream keyed by its external video id.
	UpsertStream(ctx context.Context, stream *domain.Stream) error

	// StreamsEnabled reports whether the store has a streams collection
	// configured. A disabled streams feature is a valid state.
	StreamsEnabled() bool
}
