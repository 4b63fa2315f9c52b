package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeDocs is an in-memory RestaurantDocs. It clones documents on every read
// and write, so mutations only take effect through Save, like the real store.
type fakeDocs struct {
	byID  map[string]*Restaurant
	saves int
}

func newFakeDocs(restaurants ...*Restaurant) *fakeDocs {
	f := &fakeDocs{byID: make(map[string]*Restaurant)}
	for _, r := range restaurants {
		f.byID[r.ID] = cloneRestaurant(r)
	}
	return f
}

func (f *fakeDocs) GetByID(_ context.Context, id string) (*Restaurant, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRestaurant(r), nil
}

func (f *fakeDocs) Save(_ context.Context, r *Restaurant) error {
	f.saves++
	f.byID[r.ID] = cloneRestaurant(r)
	return nil
}

func (f *fakeDocs) FindByReviewAuthor(_ context.Context, authorID string) ([]Restaurant, error) {
	var out []Restaurant
	for _, r := range f.byID {
		if hasReviewBy(r, authorID) {
			out = append(out, *cloneRestaurant(r))
		}
	}
	return out, nil
}

func (f *fakeDocs) FindByFavorite(_ context.Context, userID string) ([]Restaurant, error) {
	var out []Restaurant
	for _, r := range f.byID {
		for _, id := range r.FavoritedBy {
			if id == userID {
				out = append(out, *cloneRestaurant(r))
				break
			}
		}
	}
	return out, nil
}

func cloneRestaurant(r *Restaurant) *Restaurant {
	c := *r
	c.Reviews = make([]Review, len(r.Reviews))
	for i, review := range r.Reviews {
		c.Reviews[i] = review
		c.Reviews[i].Photos = append([]Photo(nil), review.Photos...)
		if review.WrittenBy != nil {
			author := *review.WrittenBy
			c.Reviews[i].WrittenBy = &author
		}
	}
	c.FavoritedBy = append([]string(nil), r.FavoritedBy...)
	return &c
}

var reviewsBase = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(restaurants ...*Restaurant) (*ReviewsStore, *fakeDocs) {
	docs := newFakeDocs(restaurants...)
	engine := NewReviewsStore(docs)
	engine.now = func() time.Time { return reviewsBase }
	return engine, docs
}

func testRestaurant(id string) *Restaurant {
	return &Restaurant{ID: id, Name: "Chez Slah", Reviews: []Review{}}
}

func TestCreateReviewRecomputesAverage(t *testing.T) {
	engine, docs := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()

	for i, req := range []ReviewRequest{
		{Content: "great", Rating: 5},
		{Content: "ok", Rating: 3},
		{Content: "good", Rating: 4},
	} {
		author := &User{ID: string(rune('a' + i))}
		if _, err := engine.Create(ctx, "r1", author, req); err != nil {
			t.Fatalf("create review %d: %v", i, err)
		}
	}

	saved := docs.byID["r1"]
	if saved.AverageRating != 4.0 {
		t.Errorf("expected average 4.0, got %g", saved.AverageRating)
	}

	if err := engine.Delete(ctx, "r1", saved.Reviews[0].ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	if got := docs.byID["r1"].AverageRating; got != 3.5 {
		t.Errorf("expected average 3.5 after delete, got %g", got)
	}
}

func TestCreateReviewReturnsPersistedCopy(t *testing.T) {
	engine, _ := newTestEngine(testRestaurant("r1"))

	review, err := engine.Create(context.Background(), "r1", &User{ID: "a"}, ReviewRequest{Content: "tasty", Rating: 4, PhotoIDs: []string{"p1"}})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	if review.ID == "" {
		t.Error("expected generated review id")
	}
	if !review.DatePosted.Equal(reviewsBase) || !review.LastEdited.Equal(reviewsBase) {
		t.Errorf("expected timestamps %v, got posted=%v edited=%v", reviewsBase, review.DatePosted, review.LastEdited)
	}
	if len(review.Photos) != 1 || review.Photos[0].URL != "p1" {
		t.Errorf("expected one photo p1, got %+v", review.Photos)
	}
}

func TestCreateReviewRejectsSecondByAuthor(t *testing.T) {
	engine, _ := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()
	author := &User{ID: "a"}

	if _, err := engine.Create(ctx, "r1", author, ReviewRequest{Content: "one", Rating: 4}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := engine.Create(ctx, "r1", author, ReviewRequest{Content: "two", Rating: 2}); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestCreateReviewAllowsRepeatedAnonymous(t *testing.T) {
	engine, docs := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := engine.Create(ctx, "r1", nil, ReviewRequest{Content: "anon", Rating: 3}); err != nil {
			t.Fatalf("anonymous review %d: %v", i, err)
		}
	}
	if got := len(docs.byID["r1"].Reviews); got != 2 {
		t.Errorf("expected 2 reviews, got %d", got)
	}
}

func TestCreateReviewUnknownRestaurant(t *testing.T) {
	engine, _ := newTestEngine()
	if _, err := engine.Create(context.Background(), "missing", nil, ReviewRequest{Content: "x", Rating: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	engine, _ := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()

	review, err := engine.Create(ctx, "r1", &User{ID: "a"}, ReviewRequest{Content: "mine", Rating: 4})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	anon, err := engine.Create(ctx, "r1", nil, ReviewRequest{Content: "anon", Rating: 2})
	if err != nil {
		t.Fatalf("create anonymous review: %v", err)
	}

	if _, err := engine.Update(ctx, "r1", review.ID, User{ID: "b"}, ReviewRequest{Content: "hijack", Rating: 1}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author, got %v", err)
	}
	if _, err := engine.Update(ctx, "r1", anon.ID, User{ID: "a"}, ReviewRequest{Content: "claim", Rating: 1}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for anonymous review, got %v", err)
	}
	if _, err := engine.Update(ctx, "r1", "nope", User{ID: "a"}, ReviewRequest{Content: "x", Rating: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown review, got %v", err)
	}
}

func TestUpdateReviewEditWindow(t *testing.T) {
	engine, _ := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()
	author := User{ID: "a"}

	review, err := engine.Create(ctx, "r1", &author, ReviewRequest{Content: "first", Rating: 3})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	// exactly at the cutoff still passes
	engine.now = func() time.Time { return reviewsBase.Add(reviewEditWindow) }
	updated, err := engine.Update(ctx, "r1", review.ID, author, ReviewRequest{Content: "edited", Rating: 5})
	if err != nil {
		t.Fatalf("update at window edge: %v", err)
	}
	if updated.Content != "edited" || updated.Rating != 5 {
		t.Errorf("expected edited content, got %+v", updated)
	}
	if !updated.DatePosted.Equal(reviewsBase) {
		t.Errorf("datePosted must not move on edit, got %v", updated.DatePosted)
	}
	if !updated.LastEdited.Equal(reviewsBase.Add(reviewEditWindow)) {
		t.Errorf("lastEdited not advanced, got %v", updated.LastEdited)
	}

	engine.now = func() time.Time { return reviewsBase.Add(reviewEditWindow + time.Second) }
	if _, err := engine.Update(ctx, "r1", review.ID, author, ReviewRequest{Content: "late", Rating: 1}); !errors.Is(err, ErrEditWindowExpired) {
		t.Fatalf("expected ErrEditWindowExpired, got %v", err)
	}
}

func TestUpdateReviewRecomputesAverage(t *testing.T) {
	engine, docs := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()
	author := User{ID: "a"}

	review, err := engine.Create(ctx, "r1", &author, ReviewRequest{Content: "meh", Rating: 2})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if _, err := engine.Create(ctx, "r1", &User{ID: "b"}, ReviewRequest{Content: "nice", Rating: 4}); err != nil {
		t.Fatalf("create second review: %v", err)
	}

	if _, err := engine.Update(ctx, "r1", review.ID, author, ReviewRequest{Content: "better", Rating: 4}); err != nil {
		t.Fatalf("update review: %v", err)
	}
	if got := docs.byID["r1"].AverageRating; got != 4.0 {
		t.Errorf("expected average 4.0, got %g", got)
	}
}

func TestDeleteReviewIsIdempotent(t *testing.T) {
	engine, docs := newTestEngine(testRestaurant("r1"))
	ctx := context.Background()

	review, err := engine.Create(ctx, "r1", &User{ID: "a"}, ReviewRequest{Content: "x", Rating: 3})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	if err := engine.Delete(ctx, "r1", review.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	savesAfterDelete := docs.saves

	if err := engine.Delete(ctx, "r1", review.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if docs.saves != savesAfterDelete {
		t.Error("deleting an absent review must not write")
	}
	if got := docs.byID["r1"].AverageRating; got != 0 {
		t.Errorf("expected average 0 with no reviews, got %g", got)
	}
}

func TestListReviewsPaging(t *testing.T) {
	restaurant := testRestaurant("r1")
	for i := 0; i < 5; i++ {
		restaurant.Reviews = append(restaurant.Reviews, Review{
			ID:         string(rune('a' + i)),
			Rating:     i + 1,
			DatePosted: reviewsBase.Add(time.Duration(i) * time.Hour),
		})
	}
	engine, _ := newTestEngine(restaurant)
	ctx := context.Background()

	var pages [][]Review
	for offset := 0; ; offset += 2 {
		page, total, err := engine.List(ctx, "r1", 2, offset, ReviewSort{})
		if err != nil {
			t.Fatalf("list offset %d: %v", offset, err)
		}
		if total != 5 {
			t.Fatalf("expected total 5, got %d", total)
		}
		if len(page) == 0 {
			break
		}
		pages = append(pages, page)
	}

	if len(pages) != 3 || len(pages[0]) != 2 || len(pages[1]) != 2 || len(pages[2]) != 1 {
		t.Fatalf("expected page sizes [2 2 1], got %d pages", len(pages))
	}
	// default order is newest first
	if pages[0][0].ID != "e" || pages[2][0].ID != "a" {
		t.Errorf("expected newest-first default order, got first=%s last=%s", pages[0][0].ID, pages[2][0].ID)
	}
}

func TestListReviewsSortByRating(t *testing.T) {
	restaurant := testRestaurant("r1")
	for i, rating := range []int{4, 1, 3} {
		restaurant.Reviews = append(restaurant.Reviews, Review{
			ID:         string(rune('a' + i)),
			Rating:     rating,
			DatePosted: reviewsBase,
		})
	}
	engine, _ := newTestEngine(restaurant)

	reviews, _, err := engine.List(context.Background(), "r1", 10, 0, ReviewSort{Property: "rating", Ascending: true, Sorted: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if reviews[0].Rating != 1 || reviews[2].Rating != 4 {
		t.Errorf("expected ascending ratings, got %d %d %d", reviews[0].Rating, reviews[1].Rating, reviews[2].Rating)
	}
}

func TestListByAuthorFiltersAndSorts(t *testing.T) {
	r1 := testRestaurant("r1")
	r1.Reviews = []Review{
		{ID: "mine-late", WrittenBy: &User{ID: "a"}, LastEdited: reviewsBase.Add(2 * time.Hour)},
		{ID: "other", WrittenBy: &User{ID: "b"}, LastEdited: reviewsBase},
		{ID: "anon", LastEdited: reviewsBase},
	}
	r2 := testRestaurant("r2")
	r2.Reviews = []Review{
		{ID: "mine-early", WrittenBy: &User{ID: "a"}, LastEdited: reviewsBase},
	}
	engine, _ := newTestEngine(r1, r2)

	reviews, err := engine.ListByAuthor(context.Background(), "a")
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].ID != "mine-early" || reviews[1].ID != "mine-late" {
		t.Errorf("expected oldest-edit-first order, got %s %s", reviews[0].ID, reviews[1].ID)
	}
}
