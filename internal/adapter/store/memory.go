package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

// LocalStore is an in-memory DataStore for local development. It is seeded
// with a small dataset and implements the upserts too, so a full sync pass
// can run without any hosted store credentials.
type LocalStore struct {
	mu       sync.RWMutex
	projects []domain.Project
	finances map[string]localFinance // keyed by project id
	metrics  []localMetric
	streams  map[string]*domain.Stream // keyed by internal id
}

type localFinance struct {
	revenue float64
	costs   float64
}

type localMetric struct {
	id         string
	name       string
	value      float64
	projectIDs []string
}

// NewLocalStore creates a seeded in-memory store.
func NewLocalStore() *LocalStore {
	s := &LocalStore{
		finances: make(map[string]localFinance),
		streams:  make(map[string]*domain.Stream),
	}

	s.projects = []domain.Project{
		{ID: "youtube-main", Name: "Main YouTube Channel", Type: "content", Status: domain.ProjectStatusActive, Platform: domain.PlatformYouTube, PlatformAccountID: "UC0000000000000000000000"},
		{ID: "saas-starter", Name: "SaaS Boilerplate", Type: "software", Status: domain.ProjectStatusActive, Platform: domain.PlatformGitHub, PlatformAccountID: "example/saas-starter"},
		{ID: "consulting", Name: "Dev Consulting", Type: "service", Status: domain.ProjectStatusActive},
		{ID: "failed-app", Name: "Old Crypto App", Type: "software", Status: domain.ProjectStatusArchived},
	}

	s.finances["youtube-main"] = localFinance{revenue: 45000, costs: 5200}
	s.finances["saas-starter"] = localFinance{revenue: 68000, costs: 12000}
	s.finances["consulting"] = localFinance{revenue: 12000, costs: 1200}

	seed := func(name string, value float64, projectID string) {
		s.metrics = append(s.metrics, localMetric{
			id:         uuid.NewString(),
			name:       name,
			value:      value,
			projectIDs: []string{projectID},
		})
	}
	seed("Subscribers", 125000, "youtube-main")
	seed("Monthly Views", 850000, "youtube-main")
	seed("MRR", 8500, "saas-starter")
	seed("Active Users", 340, "saas-starter")
	seed("Active Clients", 3, "consulting")

	return s
}

// ActiveProjects returns all projects with active status.
func (s *LocalStore) ActiveProjects(ctx context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.Project
	for _, p := range s.projects {
		if strings.EqualFold(p.Status, domain.ProjectStatusActive) {
			active = append(active, p)
		}
	}
	return active, nil
}

// DashboardStats recomputes the aggregate rollup over active projects.
func (s *LocalStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activeIDs := make(map[string]bool)
	for _, p := range s.projects {
		if strings.EqualFold(p.Status, domain.ProjectStatusActive) {
			activeIDs[p.ID] = true
		}
	}

	stats := &domain.DashboardStats{}
	for id, fin := range s.finances {
		if activeIDs[id] {
			stats.TotalRevenue += fin.revenue
			stats.TotalCosts += fin.costs
		}
	}
	stats.NetProfit = stats.TotalRevenue - stats.TotalCosts

	for _, m := range s.metrics {
		for _, id := range m.projectIDs {
			if activeIDs[id] {
				stats.AddMetric(m.name, m.value)
				break
			}
		}
	}
	return stats, nil
}

// ProjectDetails returns one project with its financials and metrics.
func (s *LocalStore) ProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	details, ok := s.projectDetailsLocked(projectID)
	if !ok {
		return nil, port.ErrProjectNotFound
	}
	return &details, nil
}

// MultipleProjectDetails returns details for the given ids, skipping
// unknown ids.
func (s *LocalStore) MultipleProjectDetails(ctx context.Context, projectIDs []string) ([]domain.ProjectDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var detailsList []domain.ProjectDetails
	for _, id := range projectIDs {
		if details, ok := s.projectDetailsLocked(id); ok {
			detailsList = append(detailsList, details)
		}
	}
	return detailsList, nil
}

func (s *LocalStore) projectDetailsLocked(projectID string) (domain.ProjectDetails, bool) {
	for _, p := range s.projects {
		if p.ID != projectID {
			continue
		}
		fin := s.finances[projectID]
		details := domain.ProjectDetails{
			Project:      p,
			TotalRevenue: fin.revenue,
			TotalCosts:   fin.costs,
			NetProfit:    fin.revenue - fin.costs,
		}
		for _, m := range s.metrics {
			if containsID(m.projectIDs, projectID) {
				details.Metrics = append(details.Metrics, domain.Metric{Name: m.name, Value: m.value})
			}
		}
		return details, true
	}
	return domain.ProjectDetails{}, false
}

// Streams returns all recorded streams, newest first.
func (s *LocalStore) Streams(ctx context.Context) ([]domain.StreamSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.StreamSummary, 0, len(s.streams))
	for _, st := range s.streams {
		summaries = append(summaries, st.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ActualStartTime.After(summaries[j].ActualStartTime)
	})
	return summaries, nil
}

// StreamByID returns one stream with its commit list.
func (s *LocalStore) StreamByID(ctx context.Context, id string) (*domain.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.streams[id]
	if !ok {
		return nil, port.ErrStreamNotFound
	}
	copied := *st
	return &copied, nil
}

// StreamCountForProject counts streams related to a project.
func (s *LocalStore) StreamCountForProject(ctx context.Context, projectID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, st := range s.streams {
		if containsID(st.ProjectIDs, projectID) {
			count++
		}
	}
	return count, nil
}

// LatestStreamEnd returns the end time of the most recently recorded stream.
func (s *LocalStore) LatestStreamEnd(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest time.Time
	for _, st := range s.streams {
		if st.ActualEndTime.After(latest) {
			latest = st.ActualEndTime
		}
	}
	return latest, nil
}

// UpsertMetric writes a (project, name) metric value.
func (s *LocalStore) UpsertMetric(ctx context.Context, projectID, name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.metrics {
		if s.metrics[i].name == name && containsID(s.metrics[i].projectIDs, projectID) {
			s.metrics[i].value = value
			return nil
		}
	}
	s.metrics = append(s.metrics, localMetric{
		id:         uuid.NewString(),
		name:       name,
		value:      value,
		projectIDs: []string{projectID},
	})
	return nil
}

// UpsertStream writes a stream keyed by its external video id.
func (s *LocalStore) UpsertStream(ctx context.Context, stream *domain.Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.streams {
		if existing.VideoID == stream.VideoID {
			copied := *stream
			copied.ID = id
			s.streams[id] = &copied
			return nil
		}
	}
	copied := *stream
	copied.ID = uuid.NewString()
	s.streams[copied.ID] = &copied
	return nil
}

// StreamsEnabled always reports true for the local store.
func (s *LocalStore) StreamsEnabled() bool {
	return true
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
