package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"
)

// User identifies a review author or restaurant creator. Identity is produced
// by the token layer; the store never resolves users itself.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

type Photo struct {
	URL        string    `json:"url"`
	UploadDate time.Time `json:"uploadDate"`
}

// BuildPhotos turns uploaded photo references into embedded photo entries.
func BuildPhotos(refs []string, now time.Time) []Photo {
	photos := make([]Photo, 0, len(refs))
	for _, ref := range refs {
		photos = append(photos, Photo{URL: ref, UploadDate: now})
	}
	return photos
}

type Address struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	Unit         string `json:"unit,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// TimeRange holds zero-padded 24h "HH:MM" strings. The open-now filter relies
// on their lexicographic order, so the format is validated at the boundary.
type TimeRange struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type OperatingHours struct {
	Monday    *TimeRange `json:"monday,omitempty"`
	Tuesday   *TimeRange `json:"tuesday,omitempty"`
	Wednesday *TimeRange `json:"wednesday,omitempty"`
	Thursday  *TimeRange `json:"thursday,omitempty"`
	Friday    *TimeRange `json:"friday,omitempty"`
	Saturday  *TimeRange `json:"saturday,omitempty"`
	Sunday    *TimeRange `json:"sunday,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Review struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	DatePosted time.Time `json:"datePosted"`
	LastEdited time.Time `json:"lastEdited"`
	Photos     []Photo   `json:"photos"`
	WrittenBy  *User     `json:"writtenBy,omitempty"` // nil marks an anonymous review
}

// Restaurant is the whole persisted document: reviews, photos, address,
// operating hours and the favorites set are embedded, and averageRating is
// derived from the review list. Every mutation writes the document back whole.
type Restaurant struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	CuisineType        string         `json:"cuisineType"`
	ContactInformation string         `json:"contactInformation"`
	Website            string         `json:"website,omitempty"`
	PriceRange         int            `json:"priceRange"`
	Address            Address        `json:"address"`
	GeoLocation        *GeoPoint      `json:"geoLocation,omitempty"`
	OperatingHours     OperatingHours `json:"operatingHours"`
	Photos             []Photo        `json:"photos"`
	Reviews            []Review       `json:"reviews"`
	AverageRating      float64        `json:"averageRating"`
	FavoritedBy        []string       `json:"favoritedBy"`
	Features           []string       `json:"features,omitempty"`
	CreatedBy          *User          `json:"createdBy,omitempty"`

	// Concurrency token captured on read and checked on save, so a stale
	// read-modify-write cycle fails instead of silently overwriting.
	seqNo       *int64
	primaryTerm *int64
}

type RestaurantsStore struct {
	client *elastic.Client
	index  string
}

func (s *RestaurantsStore) Create(ctx context.Context, r *Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Photos == nil {
		r.Photos = []Photo{}
	}
	if r.Reviews == nil {
		r.Reviews = []Review{}
	}
	if r.FavoritedBy == nil {
		r.FavoritedBy = []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.client.Index().
		Index(s.index).
		Id(r.ID).
		BodyJson(r).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("index restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantsStore) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.client.Get().Index(s.index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	var r Restaurant
	if err := json.Unmarshal(res.Source, &r); err != nil {
		return nil, fmt.Errorf("decode restaurant %s: %w", id, err)
	}
	r.ID = res.Id
	r.seqNo = res.SeqNo
	r.primaryTerm = res.PrimaryTerm
	return &r, nil
}

// Save writes the whole document back. When the restaurant was loaded via
// GetByID the write is conditional on the sequence number seen at read time
// and returns ErrConflict if another writer got there first.
func (s *RestaurantsStore) Save(ctx context.Context, r *Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	svc := s.client.Index().Index(s.index).Id(r.ID).BodyJson(r)
	if r.seqNo != nil && r.primaryTerm != nil {
		svc = svc.IfSeqNo(*r.seqNo).IfPrimaryTerm(*r.primaryTerm)
	}
	if _, err := svc.Do(ctx); err != nil {
		if elastic.IsConflict(err) {
			return ErrConflict
		}
		return fmt.Errorf("save restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantsStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.client.Delete().Index(s.index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			// deletes are idempotent
			return nil
		}
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantsStore) List(ctx context.Context, limit, offset int) ([]Restaurant, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.client.Search().
		Index(s.index).
		Query(elastic.NewMatchAllQuery()).
		From(offset).
		Size(limit).
		TrackTotalHits(true).
		Do(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}

	restaurants, err := decodeRestaurantHits(res)
	if err != nil {
		return nil, 0, err
	}
	return restaurants, res.TotalHits(), nil
}

// Search executes a compiled facet query and reports the true total match
// count, not the size of the returned page.
func (s *RestaurantsStore) Search(ctx context.Context, filters SearchFilters, sort SortSpec, limit, offset int) ([]Restaurant, int64, error) {
	query, sorters, err := filters.Compile(sort, time.Now())
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	svc := s.client.Search().
		Index(s.index).
		Query(query).
		From(offset).
		Size(limit).
		TrackTotalHits(true)
	if len(sorters) > 0 {
		svc = svc.SortBy(sorters...)
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("search restaurants: %w", err)
	}

	restaurants, err := decodeRestaurantHits(res)
	if err != nil {
		return nil, 0, err
	}
	return restaurants, res.TotalHits(), nil
}

func (s *RestaurantsStore) FindByReviewAuthor(ctx context.Context, authorID string) ([]Restaurant, error) {
	query := elastic.NewNestedQuery("reviews",
		elastic.NewTermQuery("reviews.writtenBy.id", authorID))
	return s.findAll(ctx, query)
}

func (s *RestaurantsStore) FindByFavorite(ctx context.Context, userID string) ([]Restaurant, error) {
	return s.findAll(ctx, elastic.NewTermQuery("favoritedBy", userID))
}

func (s *RestaurantsStore) findAll(ctx context.Context, query elastic.Query) ([]Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.client.Search().
		Index(s.index).
		Query(query).
		Size(maxScanSize).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	return decodeRestaurantHits(res)
}

func (s *RestaurantsStore) DistinctCuisines(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	agg := elastic.NewTermsAggregation().Field("cuisineType.keyword").Size(maxScanSize)
	res, err := s.client.Search().
		Index(s.index).
		Size(0).
		Aggregation("cuisines", agg).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate cuisines: %w", err)
	}

	terms, ok := res.Aggregations.Terms("cuisines")
	if !ok {
		return []string{}, nil
	}
	cuisines := make([]string, 0, len(terms.Buckets))
	for _, bucket := range terms.Buckets {
		if name, ok := bucket.Key.(string); ok {
			cuisines = append(cuisines, name)
		}
	}
	return cuisines, nil
}

// maxScanSize bounds unpaginated scans (author/favorite lookups, facet
// value aggregation).
const maxScanSize = 1000

func decodeRestaurantHits(res *elastic.SearchResult) ([]Restaurant, error) {
	restaurants := make([]Restaurant, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var r Restaurant
		if err := json.Unmarshal(hit.Source, &r); err != nil {
			return nil, fmt.Errorf("decode restaurant %s: %w", hit.Id, err)
		}
		r.ID = hit.Id
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}
