// Package seo defines core types shared across subsystems.
package seo

import "time"

// Severity classifies how urgent a finding is.
type Severity string

// Finding severities, ordered critical > warning > info.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns a sortable weight for the severity (higher is more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Category identifies one scored SEO dimension.
type Category string

// Scored categories.
const (
	CategoryTitle          Category = "title"
	CategoryMeta           Category = "meta_description"
	CategoryHeadings       Category = "headings"
	CategoryContent        Category = "content"
	CategoryImages         Category = "images"
	CategoryLinks          Category = "links"
	CategoryMobile         Category = "mobile"
	CategoryAccessibility  Category = "accessibility"
	CategorySocial         Category = "social"
	CategoryStructuredData Category = "structured_data"
)

// Categories returns every category in its declared priority order. The order
// doubles as the recommendation tie-break: earlier categories outrank later
// ones at equal severity.
func Categories() []Category {
	return []Category{
		CategoryTitle,
		CategoryMeta,
		CategoryHeadings,
		CategoryContent,
		CategoryImages,
		CategoryLinks,
		CategoryMobile,
		CategoryAccessibility,
		CategorySocial,
		CategoryStructuredData,
	}
}

// Finding is one issue discovered by a scorer. Immutable once created.
type Finding struct {
	Category Category `json:"category"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Detail carries optional best-effort enrichment text.
	Detail string `json:"detail,omitempty"`
}

// CategoryScore is the output of one category scorer for one run.
type CategoryScore struct {
	Category Category  `json:"category"`
	Score    int       `json:"score"`
	Findings []Finding `json:"findings,omitempty"`
}

// Report is the final, immutable output of one scoring run.
type Report struct {
	URL             string          `json:"url"`
	Domain          string          `json:"domain"`
	Categories      []CategoryScore `json:"categories"`
	OverallScore    int             `json:"overall_score"`
	Band            string          `json:"band"`
	Recommendations []Finding       `json:"recommendations"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// JobStatus represents the lifecycle state of an analysis job.
type JobStatus string

// Job status values persisted in the job store.
const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// AnalysisRequest captures what the client asked us to score.
type AnalysisRequest struct {
	Domain string `json:"domain"`
	// TargetKeyword, when set, enables the bounded keyword bonus in the
	// meta description scorer.
	TargetKeyword string `json:"target_keyword,omitempty"`
}

// Job represents the metadata persisted for each submitted analysis.
type Job struct {
	ID        string          `json:"id"`
	Status    JobStatus       `json:"status"`
	Progress  int             `json:"progress"`
	Request   AnalysisRequest `json:"request"`
	Submitted time.Time       `json:"submitted_at"`
	Updated   time.Time       `json:"updated_at"`
	Started   *time.Time      `json:"started_at,omitempty"`
	Finished  *time.Time      `json:"finished_at,omitempty"`
	ErrorText string          `json:"error_text,omitempty"`
}

// JobResult is returned by the API result endpoint.
type JobResult struct {
	Job    Job     `json:"job"`
	Report *Report `json:"report,omitempty"`
}

// QueueItem wraps a job ready to run.
type QueueItem struct {
	JobID     string
	Request   AnalysisRequest
	Attempt   int
	Submitted int64
}
