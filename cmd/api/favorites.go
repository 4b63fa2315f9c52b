package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) addFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.store.Favorites.Add(r.Context(), *user, chi.URLParam(r, "restaurantID")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) removeFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.store.Favorites.Remove(r.Context(), *user, chi.URLParam(r, "restaurantID")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	restaurants, err := app.store.Favorites.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, toRestaurantSummaries(restaurants)); err != nil {
		app.internalServerError(w, r, err)
	}
}
