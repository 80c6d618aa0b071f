package domain

import "strings"

// SocialMetrics is the normalized result of one platform metrics fetch.
// Fields are sparse: a nil field was not reported by the platform and must
// be skipped, not written as zero.
type SocialMetrics struct {
	Subscribers     *int
	Views           *int
	Videos          *int
	Stars           *int
	Forks           *int
	Downloads       *int
	WeeklyDownloads *int
}

// Entries flattens the present fields into named metric pairs, in a fixed
// order. Absent fields produce no entry.
func (m SocialMetrics) Entries() []Metric {
	var entries []Metric
	add := func(name string, v *int) {
		if v != nil {
			entries = append(entries, Metric{Name: name, Value: float64(*v)})
		}
	}
	add("Subscribers", m.Subscribers)
	add("Views", m.Views)
	add("Videos", m.Videos)
	add("Stars", m.Stars)
	add("Forks", m.Forks)
	add("Downloads", m.Downloads)
	add("Weekly Downloads", m.WeeklyDownloads)
	return entries
}

// DashboardStats is the aggregate view over active projects. It is derived
// on every read, never stored.
type DashboardStats struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalCosts            float64 `json:"total_costs"`
	NetProfit             float64 `json:"net_profit"`
	TotalSubscribers      float64 `json:"total_subscribers"`
	TotalViews            float64 `json:"total_views"`
	TotalActiveUsers      float64 `json:"total_active_users"`
	TotalTwitterFollowers float64 `json:"total_twitter_followers"`
	TotalTiktokFollowers  float64 `json:"total_tiktok_followers"`
	TotalTwitchFollowers  float64 `json:"total_twitch_followers"`
}

// AddMetric folds one named metric value into the matching rollup buckets.
// Matching is by substring on the lowercased metric name, so operator-typed
// names like "Monthly Views" still land in the view total.
func (s *DashboardStats) AddMetric(name string, value float64) {
	n := strings.ToLower(name)
	if strings.Contains(n, "subscriber") {
		s.TotalSubscribers += value
	}
	if strings.Contains(n, "view") {
		s.TotalViews += value
	}
	if strings.Contains(n, "user") || strings.Contains(n, "active") {
		s.TotalActiveUsers += value
	}
	if strings.Contains(n, "twitter") || strings.Contains(n, " x ") {
		s.TotalTwitterFollowers += value
	}
	if strings.Contains(n, "tiktok") {
		s.TotalTiktokFollowers += value
	}
	if strings.Contains(n, "twitch") {
		s.TotalTwitchFollowers += value
	}
}
