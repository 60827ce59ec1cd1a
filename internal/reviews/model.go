package reviews

import "time"

// Review is one analyzed resume upload. ATSScore is nil when the AI reply
// carried no parseable score line or the analysis was degraded.
type Review struct {
	ID         string
	UserID     string
	FileName   string
	JobRole    string
	ResumeText string
	AIFeedback string
	ATSScore   *float64
	CreatedAt  time.Time
}

// HistoryItem is the list-view projection of a Review.
type HistoryItem struct {
	FileName   string   `json:"fileName"`
	JobRole    string   `json:"jobRole"`
	CreatedAt  string   `json:"createdAt"`
	ATSScore   *float64 `json:"atsScore"`
	AIFeedback string   `json:"aiFeedback"`
}
