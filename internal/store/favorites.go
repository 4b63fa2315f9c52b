package store

import "context"

// FavoritesStore toggles membership of a user id in a restaurant's favorites
// set. Both directions are idempotent; only real membership changes write.
type FavoritesStore struct {
	docs RestaurantDocs
}

func (s *FavoritesStore) Add(ctx context.Context, user User, restaurantID string) error {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	for _, id := range restaurant.FavoritedBy {
		if id == user.ID {
			return nil
		}
	}
	restaurant.FavoritedBy = append(restaurant.FavoritedBy, user.ID)
	return s.docs.Save(ctx, restaurant)
}

func (s *FavoritesStore) Remove(ctx context.Context, user User, restaurantID string) error {
	restaurant, err := s.docs.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(restaurant.FavoritedBy))
	for _, id := range restaurant.FavoritedBy {
		if id != user.ID {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == len(restaurant.FavoritedBy) {
		return nil
	}
	restaurant.FavoritedBy = remaining
	return s.docs.Save(ctx, restaurant)
}

func (s *FavoritesStore) ListByUser(ctx context.Context, userID string) ([]Restaurant, error) {
	return s.docs.FindByFavorite(ctx, userID)
}
