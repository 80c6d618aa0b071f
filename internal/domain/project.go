package domain

// Project represents a tracked venture, channel, or repository.
// Projects are created and edited by the operator in the backing store;
// the sync job only reads them.
type Project struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Type              string `json:"type"`   // software, content, service, package
	Status            string `json:"status"` // active, archived
	Platform          string `json:"platform,omitempty"`
	PlatformAccountID string `json:"platform_account_id,omitempty"`
	Link              string `json:"link,omitempty"`
}

// Project status constants.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// Platform constants for projects that participate in sync.
const (
	PlatformYouTube = "youtube"
	PlatformGitHub  = "github"
	PlatformNPM     = "npm"
)

// Metric is a named numeric fact about a project at "current" granularity.
// Each (project, name) pair holds at most one live value.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ProjectDetails is a project together with its financial rollup and metrics.
type ProjectDetails struct {
	Project
	TotalRevenue float64  `json:"total_revenue"`
	TotalCosts   float64  `json:"total_costs"`
	NetProfit    float64  `json:"net_profit"`
	Metrics      []Metric `json:"metrics"`
}
