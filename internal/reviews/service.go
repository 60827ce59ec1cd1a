package reviews

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-feedback-backend/internal/extract"
	"resume-feedback-backend/internal/llm"
	"resume-feedback-backend/internal/shared/metrics"
	"resume-feedback-backend/internal/shared/tempfiles"
	"resume-feedback-backend/internal/shared/telemetry"
)

// DefaultJobRole is applied when the upload omits a target role.
const DefaultJobRole = "Frontend Developer"

// Service runs the upload pipeline and serves review reads.
type Service struct {
	Repo    Repository
	AI      llm.Client
	TempDir *tempfiles.Dir
	Now     func() time.Time
	NewID   func() string
}

// NewService wires a Service with real clock and ID generation.
func NewService(repo Repository, ai llm.Client, tempDir *tempfiles.Dir) *Service {
	return &Service{
		Repo:    repo,
		AI:      ai,
		TempDir: tempDir,
		Now:     func() time.Time { return time.Now().UTC() },
		NewID:   func() string { return uuid.NewString() },
	}
}

// UploadInput carries a single resume upload through the pipeline.
type UploadInput struct {
	UserID   string
	FileName string
	JobRole  string
	Content  io.Reader
}

// HandleUpload runs the full pipeline: spool the upload to a temp file,
// extract its text, delete the temp file, analyze, persist. The temp file
// never survives past extraction; analysis failure degrades the stored
// feedback instead of failing the request.
func (s *Service) HandleUpload(ctx context.Context, input UploadInput) (*Review, error) {
	started := s.Now()
	metrics.IncUpload()

	jobRole := input.JobRole
	if jobRole == "" {
		jobRole = DefaultJobRole
	}

	tempPath, err := s.TempDir.Save(input.FileName, input.Content)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	// Backstop for early returns; the primary removal happens right after
	// extraction, before any network call.
	defer func() {
		if err := s.TempDir.Remove(tempPath); err != nil {
			telemetry.Warn("upload.temp_cleanup_failed", map[string]any{
				"path": tempPath,
				"err":  err.Error(),
			})
		}
	}()

	text, extractErr := extract.File(tempPath)

	if err := s.TempDir.Remove(tempPath); err != nil {
		telemetry.Warn("upload.temp_cleanup_failed", map[string]any{
			"path": tempPath,
			"err":  err.Error(),
		})
	}

	if extractErr != nil {
		if !errors.Is(extractErr, extract.ErrUnsupportedType) {
			metrics.IncExtractionFailed()
		}
		return nil, extractErr
	}

	if text == "" {
		telemetry.Warn("upload.empty_text", map[string]any{
			"user_id":   input.UserID,
			"file_name": input.FileName,
		})
	}

	result := s.AI.Analyze(ctx, llm.AnalyzeInput{
		ResumeText: text,
		JobRole:    jobRole,
	})
	if result.FeedbackText == llm.DegradedFeedback {
		metrics.IncReviewDegraded()
	}

	review := &Review{
		ID:         s.NewID(),
		UserID:     input.UserID,
		FileName:   input.FileName,
		JobRole:    jobRole,
		ResumeText: text,
		AIFeedback: result.FeedbackText,
		ATSScore:   result.ATSScore,
		CreatedAt:  s.Now(),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	metrics.IncReviewStored()
	metrics.ObservePipelineDurationMs(float64(s.Now().Sub(started).Milliseconds()))

	telemetry.Info("upload.completed", map[string]any{
		"analysis_id": review.ID,
		"user_id":     review.UserID,
		"job_role":    review.JobRole,
		"has_score":   review.ATSScore != nil,
	})
	return review, nil
}

// History returns the user's reviews newest first, projected for listing.
func (s *Service) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	records, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]HistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, HistoryItem{
			FileName:   record.FileName,
			JobRole:    record.JobRole,
			CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
			ATSScore:   record.ATSScore,
			AIFeedback: record.AIFeedback,
		})
	}
	return items, nil
}

// GetOwned fetches one review scoped to its owner.
func (s *Service) GetOwned(ctx context.Context, userID, id string) (*Review, error) {
	return s.Repo.GetOwned(ctx, userID, id)
}
