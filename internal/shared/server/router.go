package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-feedback-backend/internal/auth"
	"resume-feedback-backend/internal/llm"
	"resume-feedback-backend/internal/llm/openai"
	"resume-feedback-backend/internal/reviews"
	"resume-feedback-backend/internal/shared/config"
	"resume-feedback-backend/internal/shared/metrics"
	"resume-feedback-backend/internal/shared/server/middleware"
	"resume-feedback-backend/internal/shared/server/respond"
	"resume-feedback-backend/internal/shared/storage/db"
	"resume-feedback-backend/internal/shared/tempfiles"
	"resume-feedback-backend/internal/users"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var reviewRepo reviews.Repository
	var userRepo users.Repo
	if sqlDB != nil {
		reviewRepo = &reviews.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		reviewRepo = reviews.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	aiClient := llm.Client(llm.PlaceholderClient{})
	if cfg.OpenAIAPIKey != "" {
		openaiClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			log.Printf("openai client unavailable, analyses will be degraded: %v", err)
		} else {
			aiClient = openaiClient
		}
	}

	tempDir := tempfiles.New(cfg.TempDir)
	if err := tempDir.Ensure(); err != nil {
		log.Printf("failed to prepare temp dir %s: %v", cfg.TempDir, err)
	}

	reviewSvc := reviews.NewService(reviewRepo, aiClient, tempDir)
	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	googleAuthSvc.RegisterRoutes(api)
	reviews.RegisterRoutes(api, reviewSvc)

	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
