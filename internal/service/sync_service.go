package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

// SyncService runs one synchronization pass: it refreshes every active
// project's platform metrics and reconciles newly completed live streams
// with the commits made during their windows.
//
// Units of work are processed sequentially and isolated from each other:
// one project's failure never aborts the batch. Only failures with no
// isolation boundary, like the initial project enumeration, fail the run.
// The service assumes at most one run in flight; the store's upserts are
// read-before-write and not safe under concurrent writers to the same key.
type SyncService struct {
	store       port.DataStore
	providerFor port.MetricsProviderFactory
	streams     port.StreamSource // nil disables stream discovery
	commits     port.CommitSource
}

// NewSyncService creates a sync service. streams may be nil when no stream
// platform credential is configured.
func NewSyncService(store port.DataStore, providerFor port.MetricsProviderFactory, streams port.StreamSource, commits port.CommitSource) *SyncService {
	return &SyncService{
		store:       store,
		providerFor: providerFor,
		streams:     streams,
		commits:     commits,
	}
}

// SyncReport summarizes one run. Failures counts isolated, skipped units
// of work; the run as a whole still reports success.
type SyncReport struct {
	ProjectsSynced int `json:"projects_synced"`
	MetricsWritten int `json:"metrics_written"`
	StreamsSynced  int `json:"streams_synced"`
	Failures       int `json:"failures"`
}

// Run executes one full sync pass.
func (s *SyncService) Run(ctx context.Context) (*SyncReport, error) {
	projects, err := s.store.ActiveProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	report := &SyncReport{}
	s.syncMetrics(ctx, projects, report)
	s.syncStreams(ctx, projects, report)

	slog.Info("sync complete",
		"projects", report.ProjectsSynced,
		"metrics", report.MetricsWritten,
		"streams", report.StreamsSynced,
		"failures", report.Failures,
	)
	return report, nil
}

// syncMetrics refreshes platform metrics for every project that has both a
// platform and an account id. Failures are per-project: logged, counted,
// and the loop continues.
func (s *SyncService) syncMetrics(ctx context.Context, projects []domain.Project, report *SyncReport) {
	for _, p := range projects {
		if p.Platform == "" || p.PlatformAccountID == "" {
			continue
		}

		provider, err := s.providerFor(p.Platform)
		if err != nil {
			slog.Warn("metrics provider unavailable", "project", p.Name, "platform", p.Platform, "error", err)
			report.Failures++
			continue
		}

		fetched, err := provider.GetMetrics(ctx, p.PlatformAccountID)
		if err != nil {
			slog.Error("metrics fetch failed", "project", p.Name, "platform", p.Platform, "error", err)
			report.Failures++
			continue
		}

		// Absent fields produce no entry and are never written as zero.
		failed := false
		for _, entry := range fetched.Entries() {
			if err := s.store.UpsertMetric(ctx, p.ID, entry.Name, entry.Value); err != nil {
				slog.Error("metric upsert failed", "project", p.Name, "metric", entry.Name, "error", err)
				failed = true
				break
			}
			report.MetricsWritten++
		}
		if failed {
			report.Failures++
			continue
		}
		report.ProjectsSynced++
	}
}

// syncStreams discovers completed streams on every stream-source project
// since the last recorded stream end, correlates each with commits from
// every repository project inside its window, and reconciles the result.
func (s *SyncService) syncStreams(ctx context.Context, projects []domain.Project, report *SyncReport) {
	if s.streams == nil || !s.store.StreamsEnabled() {
		slog.Info("stream discovery disabled, skipping")
		return
	}

	var sources, repos []domain.Project
	for _, p := range projects {
		if p.PlatformAccountID == "" {
			continue
		}
		switch p.Platform {
		case domain.PlatformYouTube:
			sources = append(sources, p)
		case domain.PlatformGitHub:
			repos = append(repos, p)
		}
	}
	if len(sources) == 0 {
		return
	}

	// A failed watermark lookup downgrades to a full, unbounded fetch.
	since, err := s.store.LatestStreamEnd(ctx)
	if err != nil {
		slog.Warn("watermark lookup failed, fetching full history", "error", err)
		since = time.Time{}
	}

	for _, src := range sources {
		discovered, err := s.streams.CompletedStreams(ctx, src.PlatformAccountID, since)
		if err != nil {
			slog.Error("stream discovery failed", "project", src.Name, "error", err)
			report.Failures++
			continue
		}

		for i := range discovered {
			stream := &discovered[i]
			stream.ProjectIDs = []string{src.ID}
			s.correlateCommits(ctx, stream, repos)

			if err := s.store.UpsertStream(ctx, stream); err != nil {
				slog.Error("stream upsert failed", "video", stream.VideoID, "error", err)
				report.Failures++
				continue
			}
			report.StreamsSynced++
		}
	}
}

// correlateCommits fans out over every repository project and collects the
// commits inside the stream's window, tagging each with its source
// repository and owning project. One repository's failure excludes only
// that repository's commits.
func (s *SyncService) correlateCommits(ctx context.Context, stream *domain.Stream, repos []domain.Project) {
	for _, repo := range repos {
		commits, err := s.commits.CommitsInWindow(ctx, repo.PlatformAccountID, stream.ActualStartTime, stream.ActualEndTime)
		if err != nil {
			slog.Warn("commit window fetch failed", "repo", repo.PlatformAccountID, "video", stream.VideoID, "error", err)
			continue
		}
		if len(commits) == 0 {
			continue
		}
		for i := range commits {
			commits[i].Repo = repo.PlatformAccountID
			commits[i].ProjectID = repo.ID
		}
		stream.Commits = append(stream.Commits, commits...)
		stream.ProjectIDs = append(stream.ProjectIDs, repo.ID)
	}
}
