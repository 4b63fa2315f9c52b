package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"
)

// Feature is a tag restaurants can carry ("terrace", "vegan options"). The
// search compiler matches restaurants against feature names.
type Feature struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FeaturesStore struct {
	client *elastic.Client
	index  string
}

func (s *FeaturesStore) Create(ctx context.Context, f *Feature) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.client.Index().Index(s.index).Id(f.ID).BodyJson(f).Do(ctx); err != nil {
		return fmt.Errorf("index feature: %w", err)
	}
	return nil
}

func (s *FeaturesStore) GetByID(ctx context.Context, id string) (*Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.client.Get().Index(s.index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feature: %w", err)
	}

	var f Feature
	if err := json.Unmarshal(res.Source, &f); err != nil {
		return nil, fmt.Errorf("decode feature %s: %w", id, err)
	}
	f.ID = res.Id
	return &f, nil
}

func (s *FeaturesStore) List(ctx context.Context) ([]Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.client.Search().
		Index(s.index).
		Query(elastic.NewMatchAllQuery()).
		Size(maxScanSize).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}

	features := make([]Feature, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var f Feature
		if err := json.Unmarshal(hit.Source, &f); err != nil {
			return nil, fmt.Errorf("decode feature %s: %w", hit.Id, err)
		}
		f.ID = hit.Id
		features = append(features, f)
	}
	return features, nil
}

func (s *FeaturesStore) Update(ctx context.Context, id, name string) error {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	f.Name = name

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.client.Index().Index(s.index).Id(f.ID).BodyJson(f).Do(ctx); err != nil {
		return fmt.Errorf("update feature: %w", err)
	}
	return nil
}

func (s *FeaturesStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.client.Delete().Index(s.index).Id(id).Do(ctx); err != nil {
		if elastic.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete feature: %w", err)
	}
	return nil
}
