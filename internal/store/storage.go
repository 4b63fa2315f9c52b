package store

import (
	"context"
	"errors"
	"time"

	"github.com/olivere/elastic/v7"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateReview     = errors.New("user has already reviewed this restaurant")
	ErrForbidden           = errors.New("cannot modify another user's review")
	ErrEditWindowExpired   = errors.New("review can no longer be edited")
	ErrInvalidSortProperty = errors.New("invalid sort property")
	ErrConflict            = errors.New("document was modified concurrently")

	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Restaurants interface {
		Create(context.Context, *Restaurant) error
		GetByID(context.Context, string) (*Restaurant, error)
		Save(context.Context, *Restaurant) error
		Delete(context.Context, string) error
		List(ctx context.Context, limit, offset int) ([]Restaurant, int64, error)
		Search(ctx context.Context, filters SearchFilters, sort SortSpec, limit, offset int) ([]Restaurant, int64, error)
		FindByReviewAuthor(ctx context.Context, authorID string) ([]Restaurant, error)
		FindByFavorite(ctx context.Context, userID string) ([]Restaurant, error)
		DistinctCuisines(context.Context) ([]string, error)
	}
	Reviews interface {
		Create(ctx context.Context, restaurantID string, author *User, req ReviewRequest) (*Review, error)
		Get(ctx context.Context, restaurantID, reviewID string) (*Review, error)
		List(ctx context.Context, restaurantID string, limit, offset int, sort ReviewSort) ([]Review, int, error)
		ListByAuthor(ctx context.Context, authorID string) ([]Review, error)
		Update(ctx context.Context, restaurantID, reviewID string, actor User, req ReviewRequest) (*Review, error)
		Delete(ctx context.Context, restaurantID, reviewID string) error
	}
	Favorites interface {
		Add(ctx context.Context, user User, restaurantID string) error
		Remove(ctx context.Context, user User, restaurantID string) error
		ListByUser(ctx context.Context, userID string) ([]Restaurant, error)
	}
	Features interface {
		Create(context.Context, *Feature) error
		GetByID(context.Context, string) (*Feature, error)
		List(context.Context) ([]Feature, error)
		Update(ctx context.Context, id, name string) error
		Delete(context.Context, string) error
	}
}

func NewStorage(client *elastic.Client, restaurantsIndex, featuresIndex string) Storage {
	restaurants := &RestaurantsStore{client: client, index: restaurantsIndex}
	return Storage{
		Restaurants: restaurants,
		Reviews:     NewReviewsStore(restaurants),
		Favorites:   &FavoritesStore{docs: restaurants},
		Features:    &FeaturesStore{client: client, index: featuresIndex},
	}
}
