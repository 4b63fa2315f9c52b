package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yassineraddaoui/Restaurant-Review/internal/auth"
	"github.com/yassineraddaoui/Restaurant-Review/internal/blob"
	"github.com/yassineraddaoui/Restaurant-Review/internal/db"
	"github.com/yassineraddaoui/Restaurant-Review/internal/geo"
	"github.com/yassineraddaoui/Restaurant-Review/internal/ratelimiter"
	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	// Default values
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "1.0.0"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := config{
		addr:        os.Getenv("ADDR"),
		env:         os.Getenv("ENV"),
		apiURL:      os.Getenv("EXTERNAL_URL"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		elastic: elasticConfig{
			addr:          os.Getenv("ELASTICSEARCH_ADDR"),
			index:         envOrDefault("RESTAURANTS_INDEX", "restaurants"),
			featuresIndex: envOrDefault("FEATURES_INDEX", "features"),
		},
		storage: storageConfig{
			driver:        envOrDefault("STORAGE_DRIVER", "file"),
			cloudinaryURL: os.Getenv("CLOUDINARY_URL"),
			folder:        envOrDefault("CLOUDINARY_FOLDER", "restaurant-photos"),
			location:      envOrDefault("STORAGE_LOCATION", "./uploads"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    time.Hour * 24 * 3, // 3 days
				iss:    "restaurant-review",
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	// Logger
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Elasticsearch
	client, err := db.New(cfg.elastic.addr)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Info("elasticsearch connection established")

	ctx := context.Background()
	if err := db.EnsureIndex(ctx, client, cfg.elastic.index, db.RestaurantMapping); err != nil {
		logger.Fatal(err)
	}
	if err := db.EnsureIndex(ctx, client, cfg.elastic.featuresIndex, db.FeatureMapping); err != nil {
		logger.Fatal(err)
	}

	// Storage
	storage := store.NewStorage(client, cfg.elastic.index, cfg.elastic.featuresIndex)

	// Photo storage
	var blobStore blob.Store
	switch cfg.storage.driver {
	case "cloudinary":
		blobStore, err = blob.NewCloudinaryStore(cfg.storage.cloudinaryURL, cfg.storage.folder)
		if err != nil {
			logger.Fatal(err)
		}
	default:
		blobStore, err = blob.NewFileStore(cfg.storage.location)
		if err != nil {
			logger.Fatal(err)
		}
	}

	// Rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
	)

	app := &application{
		config:        cfg,
		store:         storage,
		logger:        logger,
		blob:          blobStore,
		geo:           geo.NewRandomLocator(nil),
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
	}

	// Metrics collected at /api/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func envOrDefault(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return fallback
}
