package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/yassineraddaoui/Restaurant-Review/internal/auth"
	"github.com/yassineraddaoui/Restaurant-Review/internal/blob"
	"github.com/yassineraddaoui/Restaurant-Review/internal/geo"
	"github.com/yassineraddaoui/Restaurant-Review/internal/ratelimiter"
	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	blob          blob.Store
	geo           geo.Locator
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	env         string
	apiURL      string
	frontendURL string
	elastic     elasticConfig
	storage     storageConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type elasticConfig struct {
	addr          string
	index         string
	featuresIndex string
}

type storageConfig struct {
	driver        string // "cloudinary" or "file"
	cloudinaryURL string
	folder        string
	location      string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", app.listRestaurantsHandler)
			r.Get("/filter", app.searchRestaurantsHandler)
			r.With(app.AuthTokenMiddleware).Get("/favorites", app.listFavoritesHandler)
			r.With(app.AuthTokenMiddleware).Post("/", app.createRestaurantHandler)

			r.Route("/{restaurantID}", func(r chi.Router) {
				r.Get("/", app.getRestaurantHandler)
				r.With(app.AuthTokenMiddleware).Put("/", app.updateRestaurantHandler)
				r.With(app.AuthTokenMiddleware).Delete("/", app.deleteRestaurantHandler)

				r.With(app.AuthTokenMiddleware).Post("/favorite", app.addFavoriteHandler)
				r.With(app.AuthTokenMiddleware).Delete("/favorite", app.removeFavoriteHandler)

				r.Route("/reviews", func(r chi.Router) {
					r.Post("/", app.createAnonymousReviewHandler)
					r.With(app.AuthTokenMiddleware).Post("/user", app.createReviewHandler)
					r.Get("/", app.listReviewsHandler)
					r.Get("/{reviewID}", app.getReviewHandler)
					r.With(app.AuthTokenMiddleware).Put("/{reviewID}", app.updateReviewHandler)
					r.Delete("/{reviewID}", app.deleteReviewHandler)
				})
			})
		})

		r.With(app.AuthTokenMiddleware).Get("/reviews/mine", app.listMyReviewsHandler)

		r.Route("/photos", func(r chi.Router) {
			r.With(app.AuthTokenMiddleware).Post("/", app.uploadPhotoHandler)
			r.Get("/*", app.getPhotoHandler)
		})

		r.Route("/filters", func(r chi.Router) {
			r.Get("/cuisines", app.listCuisinesHandler)
			r.Get("/features", app.listFeatureNamesHandler)
		})

		r.Route("/features", func(r chi.Router) {
			r.Get("/", app.listFeaturesHandler)
			r.Get("/{featureID}", app.getFeatureHandler)
			r.With(app.AuthTokenMiddleware).Post("/", app.createFeatureHandler)
			r.With(app.AuthTokenMiddleware).Put("/{featureID}", app.updateFeatureHandler)
			r.With(app.AuthTokenMiddleware).Delete("/{featureID}", app.deleteFeatureHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
