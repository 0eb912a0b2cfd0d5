package reviews

import "context"

// ReviewService applies human corrections to extraction jobs.
type ReviewService interface {
	// SubmitReview stores a correction and, when accepted, patches the
	// extraction's field JSON with the corrected value.
	SubmitReview(ctx context.Context, review *ExtractionReview) (*ExtractionReview, error)
	// ListByExtraction retrieves all reviews for one extraction job.
	ListByExtraction(ctx context.Context, extractionID string) ([]*ExtractionReview, error)
}

// ReviewRepository defines the persistence interface for extraction reviews
type ReviewRepository interface {
	// Create adds a new review to the database
	Create(ctx context.Context, review *ExtractionReview) error
	// ListByExtraction lists reviews for an extraction job
	ListByExtraction(ctx context.Context, extractionID string) ([]*ExtractionReview, error)
	// ListAccepted lists all accepted reviews, for training export
	ListAccepted(ctx context.Context) ([]*ExtractionReview, error)
}
