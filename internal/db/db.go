package db

import (
	"context"
	"fmt"
	"time"

	"github.com/olivere/elastic/v7"
)

// New sets up an Elasticsearch client and verifies the cluster is reachable.
func New(url string) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, _, err := client.Ping(url).Do(ctx); err != nil {
		return nil, fmt.Errorf("ping elasticsearch: %w", err)
	}
	return client, nil
}

// EnsureIndex creates the named index with the given mapping when it does not
// exist yet. An existing index is left untouched.
func EnsureIndex(ctx context.Context, client *elastic.Client, name, mapping string) error {
	exists, err := client.IndexExists(name).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	res, err := client.CreateIndex(name).BodyString(mapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("create index %s: not acknowledged", name)
	}
	return nil
}
