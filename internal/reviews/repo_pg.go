package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repository using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new review.
func (r *PGRepo) Create(ctx context.Context, review *Review) error {
	const query = `
INSERT INTO reviews (id, user_id, file_name, job_role, resume_text, ai_feedback, ats_score, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.FileName,
		review.JobRole,
		review.ResumeText,
		review.AIFeedback,
		nullableFloat(review.ATSScore),
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// GetOwned returns the review only when it belongs to userID.
func (r *PGRepo) GetOwned(ctx context.Context, userID, id string) (*Review, error) {
	const query = `
SELECT id, user_id, file_name, job_role, resume_text, ai_feedback, ats_score, created_at
FROM reviews
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id, userID)
	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

// ListByUser returns the user's reviews newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	const query = `
SELECT id, user_id, file_name, job_role, resume_text, ai_feedback, ats_score, created_at
FROM reviews
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*Review, error) {
	var review Review
	var score sql.NullFloat64
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.FileName,
		&review.JobRole,
		&review.ResumeText,
		&review.AIFeedback,
		&score,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		review.ATSScore = &score.Float64
	}
	return &review, nil
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ Repository = (*PGRepo)(nil)
