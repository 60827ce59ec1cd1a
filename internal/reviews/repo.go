package reviews

import "context"

// Repository persists reviews. Implementations must scope reads by owner.
type Repository interface {
	Create(ctx context.Context, review *Review) error
	// GetOwned returns the review only when it belongs to userID; any other
	// outcome is ErrNotFound.
	GetOwned(ctx context.Context, userID, id string) (*Review, error)
	// ListByUser returns the user's reviews newest first.
	ListByUser(ctx context.Context, userID string) ([]Review, error)
}
