package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/olivere/elastic/v7"
)

// SearchFilters is the full facet vocabulary of the restaurant search. Every
// field is optional and independent; absent filters do not constrain the
// result at all.
type SearchFilters struct {
	CuisineTypes  []string
	MinRating     *float64
	PriceRanges   []int
	Latitude      *float64
	Longitude     *float64
	MaxDistanceKm *float64
	OpenNow       bool
	RequirePhotos bool
	CreatedByID   string
	AddressText   string
	Features      []string
}

// SortSpec is a caller-requested field sort. An empty Field means no sort was
// requested.
type SortSpec struct {
	Field     string
	Ascending bool
}

var allowedSortFields = map[string]bool{
	"averageRating": true,
}

// Compile translates the supplied filters into one bool query plus sorters.
// The sort field is validated up front so an unknown property fails before
// anything reaches the cluster. When coordinates are supplied the ascending
// distance sort replaces any requested field sort.
func (f SearchFilters) Compile(sort SortSpec, now time.Time) (elastic.Query, []elastic.Sorter, error) {
	if sort.Field != "" && !allowedSortFields[sort.Field] {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSortProperty, sort.Field)
	}

	query := elastic.NewBoolQuery()
	f.filterByCuisineType(query)
	f.filterByMinRating(query)
	f.filterByPriceRange(query)
	f.filterByGeoDistance(query)
	f.filterByOpenNow(query, now)
	f.filterByPhotos(query)
	f.filterByCreatedBy(query)
	f.filterByAddress(query)
	f.filterByFeatures(query)

	var sorters []elastic.Sorter
	switch {
	case f.Latitude != nil && f.Longitude != nil:
		sorters = append(sorters, elastic.NewGeoDistanceSort("geoLocation").
			Point(*f.Latitude, *f.Longitude).
			Asc().
			Unit("km"))
	case sort.Field != "":
		fieldSort := elastic.NewFieldSort(sort.Field)
		if sort.Ascending {
			fieldSort = fieldSort.Asc()
		} else {
			fieldSort = fieldSort.Desc()
		}
		sorters = append(sorters, fieldSort)
	}

	return query, sorters, nil
}

func (f SearchFilters) filterByCuisineType(query *elastic.BoolQuery) {
	if len(f.CuisineTypes) == 0 {
		return
	}
	anyOf := elastic.NewBoolQuery().MinimumShouldMatch("1")
	for _, cuisine := range f.CuisineTypes {
		anyOf = anyOf.Should(elastic.NewMatchQuery("cuisineType", strings.ToLower(cuisine)))
	}
	query.Must(anyOf)
}

func (f SearchFilters) filterByMinRating(query *elastic.BoolQuery) {
	if f.MinRating == nil {
		return
	}
	query.Must(elastic.NewRangeQuery("averageRating").Gte(*f.MinRating))
}

func (f SearchFilters) filterByPriceRange(query *elastic.BoolQuery) {
	if len(f.PriceRanges) == 0 {
		return
	}
	values := make([]interface{}, 0, len(f.PriceRanges))
	for _, p := range f.PriceRanges {
		values = append(values, p)
	}
	query.Must(elastic.NewTermsQuery("priceRange", values...))
}

func (f SearchFilters) filterByGeoDistance(query *elastic.BoolQuery) {
	if f.Latitude == nil || f.Longitude == nil || f.MaxDistanceKm == nil {
		return
	}
	query.Filter(elastic.NewGeoDistanceQuery("geoLocation").
		Point(*f.Latitude, *f.Longitude).
		Distance(fmt.Sprintf("%gkm", *f.MaxDistanceKm)))
}

// filterByOpenNow resolves the server-clock weekday and requires that day's
// window to contain the current time. Open and close are "HH:MM" keywords, so
// the range clauses compare lexicographically, which matches clock order for
// zero-padded 24h strings.
func (f SearchFilters) filterByOpenNow(query *elastic.BoolQuery, now time.Time) {
	if !f.OpenNow {
		return
	}
	day := weekdayField(now.Weekday())
	current := now.Format("15:04")
	query.Must(elastic.NewBoolQuery().
		Must(elastic.NewRangeQuery("operatingHours." + day + ".openTime").Lte(current)).
		Must(elastic.NewRangeQuery("operatingHours." + day + ".closeTime").Gte(current)))
}

func (f SearchFilters) filterByPhotos(query *elastic.BoolQuery) {
	if !f.RequirePhotos {
		return
	}
	query.Must(elastic.NewNestedQuery("photos", elastic.NewExistsQuery("photos.url")))
}

func (f SearchFilters) filterByCreatedBy(query *elastic.BoolQuery) {
	if f.CreatedByID == "" {
		return
	}
	query.Must(elastic.NewTermQuery("createdBy.id", f.CreatedByID))
}

func (f SearchFilters) filterByAddress(query *elastic.BoolQuery) {
	text := strings.TrimSpace(f.AddressText)
	if text == "" {
		return
	}
	anyOf := elastic.NewBoolQuery().MinimumShouldMatch("1")
	for _, field := range []string{"address.city", "address.streetName", "address.country"} {
		anyOf = anyOf.Should(elastic.NewMatchQuery(field, text).Fuzziness("AUTO"))
	}
	query.Must(anyOf)
}

func (f SearchFilters) filterByFeatures(query *elastic.BoolQuery) {
	if len(f.Features) == 0 {
		return
	}
	values := make([]interface{}, 0, len(f.Features))
	for _, feature := range f.Features {
		values = append(values, feature)
	}
	query.Must(elastic.NewTermsQuery("features", values...))
}

func weekdayField(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
