package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/arturoeanton/go-build-in-public/internal/domain"
	"github.com/arturoeanton/go-build-in-public/internal/port"
)

// UpsertMetric writes a (project, name) metric value. The store exposes no
// uniqueness constraint, so at-most-one-record-per-pair is enforced here by
// querying before writing: only when no record matches is one created, and
// an update touches only the value field.
//
// The read-then-write is not atomic; two concurrent writers can both see
// "not found" and create duplicates. The job runs single-instance on a
// schedule, which keeps that window acceptable.
func (s *NotionStore) UpsertMetric(ctx context.Context, projectID, name string, value float64) error {
	filter := filterAnd(
		filterTitleEquals(propName, name),
		filterRelationContains(propProjects, projectID),
	)
	pages, err := s.queryAll(ctx, s.collections.Metrics, filter, nil, 1)
	if err != nil {
		return fmt.Errorf("upsert metric %q: %w", name, err)
	}

	if len(pages) > 0 {
		if err := s.updatePage(ctx, pages[0].ID, map[string]any{
			propValue: numberProp(value),
		}); err != nil {
			return fmt.Errorf("update metric %q: %w", name, err)
		}
		return nil
	}

	if err := s.createPage(ctx, s.collections.Metrics, map[string]any{
		propName:     titleProp(name),
		propValue:    numberProp(value),
		propProjects: relationProp([]string{projectID}),
	}); err != nil {
		return fmt.Errorf("create metric %q: %w", name, err)
	}
	return nil
}

// UpsertStream writes a stream keyed by its external video id, by the same
// read-before-write discipline as UpsertMetric. The commit list is
// serialized to JSON and chunked across rich-text segments; concatenating
// the segments on read reproduces the payload exactly.
func (s *NotionStore) UpsertStream(ctx context.Context, stream *domain.Stream) error {
	if !s.StreamsEnabled() {
		return port.ErrStreamsDisabled
	}

	commitsJSON, err := json.Marshal(stream.Commits)
	if err != nil {
		return fmt.Errorf("upsert stream %s: encode commits: %w", stream.VideoID, err)
	}

	properties := map[string]any{
		propName:         titleProp(stream.Name),
		propVideoID:      richTextProp(stream.VideoID),
		propStartTime:    dateProp(stream.ActualStartTime.UTC().Format(time.RFC3339)),
		propEndTime:      dateProp(stream.ActualEndTime.UTC().Format(time.RFC3339)),
		propThumbnail:    urlProp(stream.ThumbnailURL),
		propViewCount:    numberProp(float64(stream.ViewCount)),
		propLikeCount:    numberProp(float64(stream.LikeCount)),
		propCommentCount: numberProp(float64(stream.CommentCount)),
		propDuration:     richTextProp(stream.Duration),
		propCommits:      richTextProp(string(commitsJSON)),
		propProjects:     relationProp(stream.ProjectIDs),
	}

	pages, err := s.queryAll(ctx, s.collections.Streams,
		filterRichTextEquals(propVideoID, stream.VideoID), nil, 1)
	if err != nil {
		return fmt.Errorf("upsert stream %s: %w", stream.VideoID, err)
	}

	if len(pages) > 0 {
		if err := s.updatePage(ctx, pages[0].ID, properties); err != nil {
			return fmt.Errorf("update stream %s: %w", stream.VideoID, err)
		}
		return nil
	}

	if err := s.createPage(ctx, s.collections.Streams, properties); err != nil {
		return fmt.Errorf("create stream %s: %w", stream.VideoID, err)
	}
	return nil
}
