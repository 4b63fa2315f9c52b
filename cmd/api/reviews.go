package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yassineraddaoui/Restaurant-Review/internal/params"
	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

type ReviewPayload struct {
	Content  string   `json:"content" validate:"required,max=2000"`
	Rating   int      `json:"rating" validate:"required,min=1,max=5"`
	PhotoIDs []string `json:"photoIds,omitempty" validate:"max=10"`
}

func (p ReviewPayload) toRequest() store.ReviewRequest {
	return store.ReviewRequest{
		Content:  p.Content,
		Rating:   p.Rating,
		PhotoIDs: p.PhotoIDs,
	}
}

func (app *application) createAnonymousReviewHandler(w http.ResponseWriter, r *http.Request) {
	app.createReview(w, r, nil)
}

func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	app.createReview(w, r, getUserFromContext(r))
}

func (app *application) createReview(w http.ResponseWriter, r *http.Request, author *store.User) {
	var payload ReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.store.Reviews.Create(r.Context(), chi.URLParam(r, "restaurantID"), author, payload.toRequest())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

type reviewPage struct {
	Reviews    []store.Review    `json:"reviews"`
	Pagination params.Pagination `json:"pagination"`
}

func (app *application) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	spec := store.ReviewSort{}
	if property := strings.TrimSpace(q.Get("sortCriteria")); property != "" {
		spec = store.ReviewSort{
			Property:  property,
			Ascending: strings.EqualFold(strings.TrimSpace(q.Get("sort")), "ASC"),
			Sorted:    true,
		}
	}

	reviews, total, err := app.store.Reviews.List(r.Context(), chi.URLParam(r, "restaurantID"), p.Limit, p.Offset, spec)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	p.ComputeMeta(total)

	page := reviewPage{Reviews: reviews, Pagination: p}
	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	review, err := app.store.Reviews.Get(r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "reviewID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload ReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	review, err := app.store.Reviews.Update(r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "reviewID"), *user, payload.toRequest())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Reviews.Delete(r.Context(), chi.URLParam(r, "restaurantID"), chi.URLParam(r, "reviewID")); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listMyReviewsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	reviews, err := app.store.Reviews.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reviews); err != nil {
		app.internalServerError(w, r, err)
	}
}
