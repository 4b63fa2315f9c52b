package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yassineraddaoui/Restaurant-Review/internal/params"
	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

type TimeRangePayload struct {
	OpenTime  string `json:"openTime" validate:"required,datetime=15:04"`
	CloseTime string `json:"closeTime" validate:"required,datetime=15:04"`
}

type OperatingHoursPayload struct {
	Monday    *TimeRangePayload `json:"monday,omitempty"`
	Tuesday   *TimeRangePayload `json:"tuesday,omitempty"`
	Wednesday *TimeRangePayload `json:"wednesday,omitempty"`
	Thursday  *TimeRangePayload `json:"thursday,omitempty"`
	Friday    *TimeRangePayload `json:"friday,omitempty"`
	Saturday  *TimeRangePayload `json:"saturday,omitempty"`
	Sunday    *TimeRangePayload `json:"sunday,omitempty"`
}

type AddressPayload struct {
	StreetNumber string `json:"streetNumber" validate:"required,max=20"`
	StreetName   string `json:"streetName" validate:"required,max=100"`
	Unit         string `json:"unit,omitempty" validate:"max=20"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state,omitempty" validate:"max=100"`
	PostalCode   string `json:"postalCode" validate:"required,max=20"`
	Country      string `json:"country" validate:"required,max=100"`
}

type RestaurantPayload struct {
	Name               string                `json:"name" validate:"required,max=100"`
	CuisineType        string                `json:"cuisineType" validate:"required,max=50"`
	ContactInformation string                `json:"contactInformation" validate:"required,max=100"`
	Website            string                `json:"website,omitempty" validate:"omitempty,url,max=200"`
	PriceRange         int                   `json:"priceRange" validate:"min=0,max=4"`
	Address            AddressPayload        `json:"address" validate:"required"`
	OperatingHours     OperatingHoursPayload `json:"operatingHours"`
	PhotoIDs           []string              `json:"photoIds,omitempty" validate:"max=20"`
	Features           []string              `json:"features,omitempty" validate:"max=20"`
}

func (p AddressPayload) toAddress() store.Address {
	return store.Address{
		StreetNumber: p.StreetNumber,
		StreetName:   p.StreetName,
		Unit:         p.Unit,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
		Country:      p.Country,
	}
}

func (p OperatingHoursPayload) toOperatingHours() store.OperatingHours {
	conv := func(tr *TimeRangePayload) *store.TimeRange {
		if tr == nil {
			return nil
		}
		return &store.TimeRange{OpenTime: tr.OpenTime, CloseTime: tr.CloseTime}
	}
	return store.OperatingHours{
		Monday:    conv(p.Monday),
		Tuesday:   conv(p.Tuesday),
		Wednesday: conv(p.Wednesday),
		Thursday:  conv(p.Thursday),
		Friday:    conv(p.Friday),
		Saturday:  conv(p.Saturday),
		Sunday:    conv(p.Sunday),
	}
}

func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var payload RestaurantPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)
	address := payload.Address.toAddress()

	point, err := app.geo.Locate(address)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	restaurant := &store.Restaurant{
		Name:               payload.Name,
		CuisineType:        payload.CuisineType,
		ContactInformation: payload.ContactInformation,
		Website:            payload.Website,
		PriceRange:         payload.PriceRange,
		Address:            address,
		GeoLocation:        &store.GeoPoint{Lat: point.Latitude, Lon: point.Longitude},
		OperatingHours:     payload.OperatingHours.toOperatingHours(),
		Photos:             store.BuildPhotos(payload.PhotoIDs, time.Now()),
		Features:           payload.Features,
		CreatedBy:          user,
	}

	if err := app.store.Restaurants.Create(r.Context(), restaurant); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := app.store.Restaurants.GetByID(r.Context(), chi.URLParam(r, "restaurantID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var payload RestaurantPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant, err := app.store.Restaurants.GetByID(r.Context(), chi.URLParam(r, "restaurantID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	address := payload.Address.toAddress()
	point, err := app.geo.Locate(address)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Reviews, favorites, rating and creator survive the update untouched;
	// only the descriptive fields are replaced.
	restaurant.Name = payload.Name
	restaurant.CuisineType = payload.CuisineType
	restaurant.ContactInformation = payload.ContactInformation
	restaurant.Website = payload.Website
	restaurant.PriceRange = payload.PriceRange
	restaurant.Address = address
	restaurant.GeoLocation = &store.GeoPoint{Lat: point.Latitude, Lon: point.Longitude}
	restaurant.OperatingHours = payload.OperatingHours.toOperatingHours()
	restaurant.Photos = store.BuildPhotos(payload.PhotoIDs, time.Now())
	restaurant.Features = payload.Features

	if err := app.store.Restaurants.Save(r.Context(), restaurant); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Restaurants.Delete(r.Context(), chi.URLParam(r, "restaurantID")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// restaurantSummary is the trimmed projection returned by list and search
// endpoints. Full documents only come back from the detail endpoint.
type restaurantSummary struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	CuisineType   string        `json:"cuisineType"`
	AverageRating float64       `json:"averageRating"`
	TotalReviews  int           `json:"totalReviews"`
	Website       string        `json:"website,omitempty"`
	Address       store.Address `json:"address"`
	Photos        []store.Photo `json:"photos"`
}

func toRestaurantSummary(r store.Restaurant) restaurantSummary {
	return restaurantSummary{
		ID:            r.ID,
		Name:          r.Name,
		CuisineType:   r.CuisineType,
		AverageRating: r.AverageRating,
		TotalReviews:  len(r.Reviews),
		Website:       r.Website,
		Address:       r.Address,
		Photos:        r.Photos,
	}
}

func toRestaurantSummaries(restaurants []store.Restaurant) []restaurantSummary {
	summaries := make([]restaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		summaries = append(summaries, toRestaurantSummary(r))
	}
	return summaries
}

type restaurantPage struct {
	Restaurants []restaurantSummary `json:"restaurants"`
	Pagination  params.Pagination   `json:"pagination"`
}

func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	restaurants, total, err := app.store.Restaurants.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	p.ComputeMeta(int(total))

	page := restaurantPage{
		Restaurants: toRestaurantSummaries(restaurants),
		Pagination:  p,
	}
	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) searchRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	filters, err := parseSearchFilters(q)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	sortSpec := parseSortSpec(q)

	restaurants, total, err := app.store.Restaurants.Search(r.Context(), filters, sortSpec, p.Limit, p.Offset)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	p.ComputeMeta(int(total))

	page := restaurantPage{
		Restaurants: toRestaurantSummaries(restaurants),
		Pagination:  p,
	}
	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// parseSearchFilters reads the facet query parameters. List-valued facets
// accept both repeated parameters and comma-separated values.
func parseSearchFilters(q url.Values) (store.SearchFilters, error) {
	filters := store.SearchFilters{
		CuisineTypes: splitMulti(q["cuisineType"]),
		CreatedByID:  strings.TrimSpace(q.Get("createdBy")),
		AddressText:  strings.TrimSpace(q.Get("address")),
		Features:     splitMulti(q["feature"]),
	}

	var err error
	if filters.MinRating, err = parseOptionalFloat(q.Get("minRating")); err != nil {
		return store.SearchFilters{}, err
	}
	if filters.Latitude, err = parseOptionalFloat(q.Get("latitude")); err != nil {
		return store.SearchFilters{}, err
	}
	if filters.Longitude, err = parseOptionalFloat(q.Get("longitude")); err != nil {
		return store.SearchFilters{}, err
	}
	if filters.MaxDistanceKm, err = parseOptionalFloat(q.Get("maxDistance")); err != nil {
		return store.SearchFilters{}, err
	}

	for _, raw := range splitMulti(q["priceRange"]) {
		price, err := strconv.Atoi(raw)
		if err != nil {
			return store.SearchFilters{}, err
		}
		filters.PriceRanges = append(filters.PriceRanges, price)
	}

	if raw := q.Get("openNow"); raw != "" {
		if filters.OpenNow, err = strconv.ParseBool(raw); err != nil {
			return store.SearchFilters{}, err
		}
	}
	if raw := q.Get("hasPhotos"); raw != "" {
		if filters.RequirePhotos, err = strconv.ParseBool(raw); err != nil {
			return store.SearchFilters{}, err
		}
	}

	return filters, nil
}

// parseSortSpec reads ?sortCriteria= and ?sort=ASC|DESC, defaulting to the
// average rating in descending order.
func parseSortSpec(q url.Values) store.SortSpec {
	spec := store.SortSpec{Field: "averageRating"}
	if field := strings.TrimSpace(q.Get("sortCriteria")); field != "" {
		spec.Field = field
	}
	spec.Ascending = strings.EqualFold(strings.TrimSpace(q.Get("sort")), "ASC")
	return spec
}

func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &val, nil
}
