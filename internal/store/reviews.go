package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// RestaurantDocs is the slice of the restaurant repository the review and
// favorites stores mutate through. Every mutation loads the whole document,
// changes it in memory and writes it back as a single unit; the embedded
// review list is never touched outside this path.
type RestaurantDocs interface {
	GetByID(ctx context.Context, id string) (*Restaurant, error)
	Save(ctx context.Context, r *Restaurant) error
	FindByReviewAuthor(ctx context.Context, authorID string) ([]Restaurant, error)
	FindByFavorite(ctx context.Context, userID string) ([]Restaurant, error)
}

// reviewEditWindow is how long after posting an author may still edit.
// An edit at exactly the cutoff is allowed; only strictly later fails.
const reviewEditWindow = 48 * time.Hour

type ReviewRequest struct {
	Content  string
	Rating   int
	PhotoIDs []string
}

// ReviewSort describes the in-memory ordering of a restaurant's review list.
// Sorted false means the caller did not ask, which defaults to newest first.
type ReviewSort struct {
	Property  string
	Ascending bool
	Sorted    bool
}

type ReviewsStore struct {
	docs RestaurantDocs
	now  func() time.Time
}

func NewReviewsStore(docs RestaurantDocs) *ReviewsStore {
	return &ReviewsStore{docs: docs, now: time.Now}
}

func (s *ReviewsStore) Create(ctx context.Context, restaurantID string, author *User, req ReviewRequest) (*Review, error) {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if author != nil && hasReviewBy(restaurant, author.ID) {
		return nil, ErrDuplicateReview
	}

	now := s.now()
	review := Review{
		ID:         uuid.New().String(),
		Content:    req.Content,
		Rating:     req.Rating,
		Photos:     BuildPhotos(req.PhotoIDs, now),
		DatePosted: now,
		LastEdited: now,
		WrittenBy:  author,
	}
	restaurant.Reviews = append(restaurant.Reviews, review)
	recomputeAverageRating(restaurant)

	if err := s.docs.Save(ctx, restaurant); err != nil {
		return nil, err
	}

	// Read the review back from the persisted document so any
	// transformation applied by the store shows up in the response.
	saved, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	created := findReview(saved, review.ID)
	if created == nil {
		return nil, fmt.Errorf("review %s missing after save", review.ID)
	}
	return created, nil
}

func (s *ReviewsStore) Get(ctx context.Context, restaurantID, reviewID string) (*Review, error) {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	review := findReview(restaurant, reviewID)
	if review == nil {
		return nil, ErrNotFound
	}
	return review, nil
}

func (s *ReviewsStore) List(ctx context.Context, restaurantID string, limit, offset int, spec ReviewSort) ([]Review, int, error) {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, 0, err
	}

	// The review list is embedded and unindexed, so sorting and paging
	// happen over the loaded collection.
	reviews := make([]Review, len(restaurant.Reviews))
	copy(reviews, restaurant.Reviews)
	sortReviews(reviews, spec)

	total := len(reviews)
	if offset >= total {
		return []Review{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return reviews[offset:end], total, nil
}

func (s *ReviewsStore) ListByAuthor(ctx context.Context, authorID string) ([]Review, error) {
	restaurants, err := s.docs.FindByReviewAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	reviews := []Review{}
	for _, restaurant := range restaurants {
		for _, review := range restaurant.Reviews {
			if review.WrittenBy != nil && review.WrittenBy.ID == authorID {
				reviews = append(reviews, review)
			}
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].LastEdited.Before(reviews[j].LastEdited)
	})
	return reviews, nil
}

func (s *ReviewsStore) Update(ctx context.Context, restaurantID, reviewID string, actor User, req ReviewRequest) (*Review, error) {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	existing := findReview(restaurant, reviewID)
	if existing == nil {
		return nil, ErrNotFound
	}
	// Anonymous reviews have no author and can never be edited.
	if existing.WrittenBy == nil || existing.WrittenBy.ID != actor.ID {
		return nil, ErrForbidden
	}

	now := s.now()
	if now.After(existing.DatePosted.Add(reviewEditWindow)) {
		return nil, ErrEditWindowExpired
	}

	existing.Content = req.Content
	existing.Rating = req.Rating
	existing.Photos = BuildPhotos(req.PhotoIDs, now)
	existing.LastEdited = now
	recomputeAverageRating(restaurant)

	if err := s.docs.Save(ctx, restaurant); err != nil {
		return nil, err
	}
	updated := *existing
	return &updated, nil
}

func (s *ReviewsStore) Delete(ctx context.Context, restaurantID, reviewID string) error {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}

	remaining := make([]Review, 0, len(restaurant.Reviews))
	for _, review := range restaurant.Reviews {
		if review.ID != reviewID {
			remaining = append(remaining, review)
		}
	}
	if len(remaining) == len(restaurant.Reviews) {
		// already absent, nothing to write
		return nil
	}

	restaurant.Reviews = remaining
	recomputeAverageRating(restaurant)
	return s.docs.Save(ctx, restaurant)
}

func findReview(r *Restaurant, reviewID string) *Review {
	for i := range r.Reviews {
		if r.Reviews[i].ID == reviewID {
			return &r.Reviews[i]
		}
	}
	return nil
}

func hasReviewBy(r *Restaurant, authorID string) bool {
	for _, review := range r.Reviews {
		if review.WrittenBy != nil && review.WrittenBy.ID == authorID {
			return true
		}
	}
	return false
}

func recomputeAverageRating(r *Restaurant) {
	if len(r.Reviews) == 0 {
		r.AverageRating = 0
		return
	}
	sum := 0
	for _, review := range r.Reviews {
		sum += review.Rating
	}
	r.AverageRating = float64(sum) / float64(len(r.Reviews))
}

func sortReviews(reviews []Review, spec ReviewSort) {
	if !spec.Sorted {
		sort.Slice(reviews, func(i, j int) bool {
			return reviews[i].DatePosted.After(reviews[j].DatePosted)
		})
		return
	}

	var less func(i, j int) bool
	switch spec.Property {
	case "rating":
		less = func(i, j int) bool { return reviews[i].Rating < reviews[j].Rating }
	default:
		less = func(i, j int) bool { return reviews[i].DatePosted.Before(reviews[j].DatePosted) }
	}
	if spec.Ascending {
		sort.Slice(reviews, less)
	} else {
		sort.Slice(reviews, func(i, j int) bool { return less(j, i) })
	}
}
