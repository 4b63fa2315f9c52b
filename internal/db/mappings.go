package db

// RestaurantMapping is the restaurants index: reviews and photos are nested
// so per-item queries work, geoLocation is a geo_point for distance filters
// and sorting, and operating hour bounds are keywords compared as strings.
const RestaurantMapping = `{
  "mappings": {
    "properties": {
      "name": {"type": "text"},
      "cuisineType": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "contactInformation": {"type": "keyword"},
      "website": {"type": "keyword"},
      "priceRange": {"type": "integer"},
      "averageRating": {"type": "float"},
      "geoLocation": {"type": "geo_point"},
      "features": {"type": "keyword"},
      "favoritedBy": {"type": "keyword"},
      "address": {
        "properties": {
          "streetNumber": {"type": "keyword"},
          "streetName": {"type": "text"},
          "unit": {"type": "keyword"},
          "city": {"type": "text"},
          "state": {"type": "keyword"},
          "postalCode": {"type": "keyword"},
          "country": {"type": "text"}
        }
      },
      "operatingHours": {
        "properties": {
          "monday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}},
          "tuesday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}},
          "wednesday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}},
          "thursday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}},
          "friday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}},
          "saturday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}},
          "sunday": {"properties": {"openTime": {"type": "keyword"}, "closeTime": {"type": "keyword"}}}
        }
      },
      "createdBy": {
        "properties": {
          "id": {"type": "keyword"},
          "username": {"type": "keyword"},
          "givenName": {"type": "keyword"},
          "familyName": {"type": "keyword"}
        }
      },
      "photos": {
        "type": "nested",
        "properties": {
          "url": {"type": "keyword"},
          "uploadDate": {"type": "date"}
        }
      },
      "reviews": {
        "type": "nested",
        "properties": {
          "id": {"type": "keyword"},
          "content": {"type": "text"},
          "rating": {"type": "integer"},
          "datePosted": {"type": "date"},
          "lastEdited": {"type": "date"},
          "photos": {
            "type": "nested",
            "properties": {
              "url": {"type": "keyword"},
              "uploadDate": {"type": "date"}
            }
          },
          "writtenBy": {
            "properties": {
              "id": {"type": "keyword"},
              "username": {"type": "keyword"},
              "givenName": {"type": "keyword"},
              "familyName": {"type": "keyword"}
            }
          }
        }
      }
    }
  }
}`

// FeatureMapping is the feature tag index.
const FeatureMapping = `{
  "mappings": {
    "properties": {
      "name": {"type": "keyword"}
    }
  }
}`
