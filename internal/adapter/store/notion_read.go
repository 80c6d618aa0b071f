package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

// ActiveProjects returns all projects with active status.
func (s *NotionStore) ActiveProjects(ctx context.Context) ([]domain.Project, error) {
	pages, err := s.queryAll(ctx, s.collections.Projects,
		filterSelectEquals(propStatus, domain.ProjectStatusActive), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(pages))
	for _, p := range pages {
		projects = append(projects, projectFromPage(p))
	}
	return projects, nil
}

// DashboardStats recomputes the aggregate rollup over active projects.
func (s *NotionStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	projectPages, err := s.queryAll(ctx, s.collections.Projects,
		filterSelectEquals(propStatus, domain.ProjectStatusActive), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("stats: list projects: %w", err)
	}
	revenuePages, err := s.queryAll(ctx, s.collections.Revenue, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("stats: list revenue: %w", err)
	}
	costPages, err := s.queryAll(ctx, s.collections.Costs, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("stats: list costs: %w", err)
	}
	metricPages, err := s.queryAll(ctx, s.collections.Metrics, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("stats: list metrics: %w", err)
	}

	activeIDs := make(map[string]bool, len(projectPages))
	for _, p := range projectPages {
		activeIDs[p.ID] = true
	}

	stats := &domain.DashboardStats{}
	for _, p := range revenuePages {
		stats.TotalRevenue += p.Properties[propAmount].numberValue()
	}
	for _, p := range costPages {
		stats.TotalCosts += p.Properties[propAmount].numberValue()
	}
	stats.NetProfit = stats.TotalRevenue - stats.TotalCosts

	// Only metrics related to an active project contribute to the rollup.
	for _, p := range metricPages {
		related := false
		for _, id := range p.Properties[propProjects].relationIDs() {
			if activeIDs[id] {
				related = true
				break
			}
		}
		if !related {
			continue
		}
		stats.AddMetric(p.Properties[propName].titleText(), p.Properties[propValue].numberValue())
	}

	return stats, nil
}

// ProjectDetails returns one project with its financials and metrics.
func (s *NotionStore) ProjectDetails(ctx context.Context, projectID string) (*domain.ProjectDetails, error) {
	projectPages, err := s.queryAll(ctx, s.collections.Projects, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list projects: %w", err)
	}

	var projectPage *page
	for i := range projectPages {
		if projectPages[i].ID == projectID {
			projectPage = &projectPages[i]
			break
		}
	}
	if projectPage == nil {
		return nil, port.ErrProjectNotFound
	}

	revenuePages, err := s.queryAll(ctx, s.collections.Revenue,
		filterRelationContains(propProjects, projectID), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list revenue: %w", err)
	}
	costPages, err := s.queryAll(ctx, s.collections.Costs,
		filterRelationContains(propProjects, projectID), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list costs: %w", err)
	}
	metricPages, err := s.queryAll(ctx, s.collections.Metrics,
		filterRelationContains(propProjects, projectID), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list metrics: %w", err)
	}

	details := &domain.ProjectDetails{Project: projectFromPage(*projectPage)}
	for _, p := range revenuePages {
		details.TotalRevenue += p.Properties[propAmount].numberValue()
	}
	for _, p := range costPages {
		details.TotalCosts += p.Properties[propAmount].numberValue()
	}
	details.NetProfit = details.TotalRevenue - details.TotalCosts

	for _, p := range metricPages {
		name := p.Properties[propName].titleText()
		if name == "" {
			continue
		}
		details.Metrics = append(details.Metrics, domain.Metric{
			Name:  name,
			Value: p.Properties[propValue].numberValue(),
		})
	}
	return details, nil
}

// MultipleProjectDetails bulk-fetches all four collections once and
// assembles details per requested id, skipping unknown ids.
func (s *NotionStore) MultipleProjectDetails(ctx context.Context, projectIDs []string) ([]domain.ProjectDetails, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	projectPages, err := s.queryAll(ctx, s.collections.Projects, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list projects: %w", err)
	}
	revenuePages, err := s.queryAll(ctx, s.collections.Revenue, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list revenue: %w", err)
	}
	costPages, err := s.queryAll(ctx, s.collections.Costs, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list costs: %w", err)
	}
	metricPages, err := s.queryAll(ctx, s.collections.Metrics, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("project details: list metrics: %w", err)
	}

	byID := make(map[string]page, len(projectPages))
	for _, p := range projectPages {
		byID[p.ID] = p
	}

	relatesTo := func(p page, id string) bool {
		for _, ref := range p.Properties[propProjects].relationIDs() {
			if ref == id {
				return true
			}
		}
		return false
	}

	var detailsList []domain.ProjectDetails
	for _, id := range projectIDs {
		projectPage, ok := byID[id]
		if !ok {
			continue
		}

		details := domain.ProjectDetails{Project: projectFromPage(projectPage)}
		for _, p := range revenuePages {
			if relatesTo(p, id) {
				details.TotalRevenue += p.Properties[propAmount].numberValue()
			}
		}
		for _, p := range costPages {
			if relatesTo(p, id) {
				details.TotalCosts += p.Properties[propAmount].numberValue()
			}
		}
		details.NetProfit = details.TotalRevenue - details.TotalCosts

		for _, p := range metricPages {
			if !relatesTo(p, id) {
				continue
			}
			name := p.Properties[propName].titleText()
			if name == "" {
				continue
			}
			details.Metrics = append(details.Metrics, domain.Metric{
				Name:  name,
				Value: p.Properties[propValue].numberValue(),
			})
		}
		detailsList = append(detailsList, details)
	}
	return detailsList, nil
}

// Streams returns all recorded streams, newest first.
func (s *NotionStore) Streams(ctx context.Context) ([]domain.StreamSummary, error) {
	if !s.StreamsEnabled() {
		return nil, nil
	}
	pages, err := s.queryAll(ctx, s.collections.Streams, nil, sortDescending(propStartTime), 0)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}

	summaries := make([]domain.StreamSummary, 0, len(pages))
	for _, p := range pages {
		stream := streamFromPage(p)
		summaries = append(summaries, stream.Summary())
	}
	return summaries, nil
}

// StreamByID returns one stream with its commit list.
func (s *NotionStore) StreamByID(ctx context.Context, id string) (*domain.Stream, error) {
	if !s.StreamsEnabled() {
		return nil, port.ErrStreamNotFound
	}
	pages, err := s.queryAll(ctx, s.collections.Streams, nil, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("get stream: %w", err)
	}
	for _, p := range pages {
		if p.ID == id {
			stream := streamFromPage(p)
			return &stream, nil
		}
	}
	return nil, port.ErrStreamNotFound
}

// StreamCountForProject counts streams related to a project.
func (s *NotionStore) StreamCountForProject(ctx context.Context, projectID string) (int, error) {
	if !s.StreamsEnabled() {
		return 0, nil
	}
	pages, err := s.queryAll(ctx, s.collections.Streams,
		filterRelationContains(propProjects, projectID), nil, 0)
	if err != nil {
		return 0, fmt.Errorf("count streams: %w", err)
	}
	return len(pages), nil
}

// LatestStreamEnd returns the end time of the most recently recorded
// stream. The zero time means no streams exist yet.
func (s *NotionStore) LatestStreamEnd(ctx context.Context) (time.Time, error) {
	if !s.StreamsEnabled() {
		return time.Time{}, nil
	}
	pages, err := s.queryAll(ctx, s.collections.Streams, nil, sortDescending(propEndTime), 1)
	if err != nil {
		return time.Time{}, fmt.Errorf("latest stream end: %w", err)
	}
	if len(pages) == 0 {
		return time.Time{}, nil
	}
	return parseISOTime(pages[0].Properties[propEndTime].dateStart()), nil
}

// projectFromPage translates a projects-collection page into the domain
// entity; this is the only place the projects property bag is interpreted.
func projectFromPage(p page) domain.Project {
	project := domain.Project{
		ID:                p.ID,
		Name:              p.Properties[propName].titleText(),
		Type:              p.Properties[propType].selectName(),
		Status:            p.Properties[propStatus].selectName(),
		Platform:          p.Properties[propPlatform].selectName(),
		PlatformAccountID: p.Properties[propAccountID].plainText(),
		Link:              p.Properties[propLink].urlValue(),
	}
	if project.Link == "" {
		project.Link = deriveLink(project.Platform, project.PlatformAccountID)
	}
	return project
}

// deriveLink builds a public profile link from platform and account id
// when the operator has not set one explicitly.
func deriveLink(platform, accountID string) string {
	if accountID == "" {
		return ""
	}
	switch platform {
	case "youtube":
		return "https://youtube.com/channel/" + accountID
	case "twitter", "x":
		return "https://x.com/" + accountID
	case "tiktok":
		return "https://tiktok.com/@" + accountID
	case "twitch":
		return "https://twitch.tv/" + accountID
	}
	return ""
}

// streamFromPage translates a streams-collection page into the domain
// entity. An unparsable commit payload reads as no commits.
func streamFromPage(p page) domain.Stream {
	stream := domain.Stream{
		ID:              p.ID,
		Name:            p.Properties[propName].titleText(),
		VideoID:         p.Properties[propVideoID].plainText(),
		ActualStartTime: parseISOTime(p.Properties[propStartTime].dateStart()),
		ActualEndTime:   parseISOTime(p.Properties[propEndTime].dateStart()),
		ThumbnailURL:    p.Properties[propThumbnail].urlValue(),
		ViewCount:       int(p.Properties[propViewCount].numberValue()),
		LikeCount:       int(p.Properties[propLikeCount].numberValue()),
		CommentCount:    int(p.Properties[propCommentCount].numberValue()),
		Duration:        p.Properties[propDuration].plainText(),
		ProjectIDs:      p.Properties[propProjects].relationIDs(),
	}

	if raw := p.Properties[propCommits].plainText(); raw != "" {
		var commits []domain.StreamCommit
		if err := json.Unmarshal([]byte(raw), &commits); err == nil {
			stream.Commits = commits
		}
	}
	return stream
}

func parseISOTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
