package domain

import "time"

// Stream is a completed live-coding session. VideoID is the external
// natural key; ID is the backing store's internal page id and is empty
// until the stream has been persisted.
type Stream struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	VideoID         string         `json:"videoId"`
	ActualStartTime time.Time      `json:"actualStartTime"`
	ActualEndTime   time.Time      `json:"actualEndTime"`
	ThumbnailURL    string         `json:"thumbnailUrl"`
	ViewCount       int            `json:"viewCount"`
	LikeCount       int            `json:"likeCount"`
	CommentCount    int            `json:"commentCount"`
	Duration        string         `json:"duration"` // ISO 8601, as reported by the platform
	Commits         []StreamCommit `json:"commits"`
	ProjectIDs      []string       `json:"projectIds"`
}

// StreamCommit is a commit correlated with a stream's time window. It only
// exists inside a stream's serialized commit payload.
type StreamCommit struct {
	SHA       string    `json:"sha"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	HTMLURL   string    `json:"htmlUrl"`
	Repo      string    `json:"repo"`
	ProjectID string    `json:"projectId"`
}

// StreamSummary is the list-view projection of a stream: commit payloads
// are reduced to a count.
type StreamSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	VideoID         string    `json:"videoId"`
	ActualStartTime time.Time `json:"actualStartTime"`
	ActualEndTime   time.Time `json:"actualEndTime"`
	ThumbnailURL    string    `json:"thumbnailUrl"`
	ViewCount       int       `json:"viewCount"`
	LikeCount       int       `json:"likeCount"`
	CommentCount    int       `json:"commentCount"`
	Duration        string    `json:"duration"`
	CommitCount     int       `json:"commitCount"`
	ProjectIDs      []string  `json:"projectIds"`
}

// Summary reduces a stream to its list-view projection.
func (s *Stream) Summary() StreamSummary {
	return StreamSummary{
		ID:              s.ID,
		Name:            s.Name,
		VideoID:         s.VideoID,
		ActualStartTime: s.ActualStartTime,
		ActualEndTime:   s.ActualEndTime,
		ThumbnailURL:    s.ThumbnailURL,
		ViewCount:       s.ViewCount,
		LikeCount:       s.LikeCount,
		CommentCount:    s.CommentCount,
		Duration:        s.Duration,
		CommitCount:     len(s.Commits),
		ProjectIDs:      s.ProjectIDs,
	}
}
