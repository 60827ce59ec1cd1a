package llm

import (
	"context"

	"resume-feedback-backend/internal/shared/telemetry"
)

// AnalyzeInput captures the inputs needed for resume feedback.
type AnalyzeInput struct {
	ResumeText string
	JobRole    string
}

// Result is the outcome of one analysis. FeedbackText is never empty: on any
// provider failure it carries DegradedFeedback and ATSScore is nil.
type Result struct {
	FeedbackText string
	ATSScore     *float64
}

// Client abstracts the feedback provider. Analyze never fails: provider
// errors are absorbed into a degraded Result so AI unavailability can never
// fail an upload.
type Client interface {
	Analyze(ctx context.Context, input AnalyzeInput) Result
}

// DegradedFeedback is the deterministic placeholder stored when the provider
// is unavailable.
const DegradedFeedback = "AI analysis failed. Please try again later."

// Degraded returns the sentinel result used for any provider failure.
func Degraded() Result {
	return Result{FeedbackText: DegradedFeedback}
}

// PlaceholderClient is used when no provider is configured (e.g. dev without
// an API key). Every call degrades.
type PlaceholderClient struct{}

// Analyze returns the degraded sentinel result.
func (PlaceholderClient) Analyze(ctx context.Context, input AnalyzeInput) Result {
	_ = ctx
	_ = input
	telemetry.Warn("llm.not_configured", map[string]any{
		"job_role": input.JobRole,
	})
	return Degraded()
}
