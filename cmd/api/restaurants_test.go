package main

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseSearchFilters(t *testing.T) {
	q := url.Values{
		"cuisineType": {"italian,french", "japanese"},
		"minRating":   {"3.5"},
		"priceRange":  {"1,2"},
		"latitude":    {"36.8"},
		"longitude":   {"10.18"},
		"maxDistance": {"5"},
		"openNow":     {"true"},
		"hasPhotos":   {"true"},
		"createdBy":   {"u-1"},
		"address":     {"Tunis"},
		"feature":     {"terrace"},
	}

	filters, err := parseSearchFilters(q)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !reflect.DeepEqual(filters.CuisineTypes, []string{"italian", "french", "japanese"}) {
		t.Errorf("cuisineTypes = %v", filters.CuisineTypes)
	}
	if filters.MinRating == nil || *filters.MinRating != 3.5 {
		t.Errorf("minRating = %v", filters.MinRating)
	}
	if !reflect.DeepEqual(filters.PriceRanges, []int{1, 2}) {
		t.Errorf("priceRanges = %v", filters.PriceRanges)
	}
	if filters.Latitude == nil || *filters.Latitude != 36.8 ||
		filters.Longitude == nil || *filters.Longitude != 10.18 ||
		filters.MaxDistanceKm == nil || *filters.MaxDistanceKm != 5 {
		t.Errorf("geo params = %v %v %v", filters.Latitude, filters.Longitude, filters.MaxDistanceKm)
	}
	if !filters.OpenNow || !filters.RequirePhotos {
		t.Errorf("flags = openNow:%v hasPhotos:%v", filters.OpenNow, filters.RequirePhotos)
	}
	if filters.CreatedByID != "u-1" || filters.AddressText != "Tunis" {
		t.Errorf("createdBy=%q address=%q", filters.CreatedByID, filters.AddressText)
	}
	if !reflect.DeepEqual(filters.Features, []string{"terrace"}) {
		t.Errorf("features = %v", filters.Features)
	}
}

func TestParseSearchFiltersEmptyQuery(t *testing.T) {
	filters, err := parseSearchFilters(url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(filters.CuisineTypes) != 0 || filters.MinRating != nil || filters.OpenNow {
		t.Errorf("expected zero-valued filters, got %+v", filters)
	}
}

func TestParseSearchFiltersRejectsBadNumbers(t *testing.T) {
	for _, q := range []url.Values{
		{"minRating": {"high"}},
		{"priceRange": {"cheap"}},
		{"openNow": {"maybe"}},
	} {
		if _, err := parseSearchFilters(q); err == nil {
			t.Errorf("expected error for %v", q)
		}
	}
}

func TestParseSortSpec(t *testing.T) {
	spec := parseSortSpec(url.Values{})
	if spec.Field != "averageRating" || spec.Ascending {
		t.Errorf("expected default averageRating DESC, got %+v", spec)
	}

	spec = parseSortSpec(url.Values{"sort": {"ASC"}})
	if !spec.Ascending {
		t.Errorf("expected ascending, got %+v", spec)
	}

	spec = parseSortSpec(url.Values{"sortCriteria": {"name"}, "sort": {"desc"}})
	if spec.Field != "name" || spec.Ascending {
		t.Errorf("expected name DESC, got %+v", spec)
	}
}
