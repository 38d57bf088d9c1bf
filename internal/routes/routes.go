package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mycontacts/mycontacts/internal/auth"
	"github.com/mycontacts/mycontacts/internal/config"
	"github.com/mycontacts/mycontacts/internal/contact"
	"github.com/mycontacts/mycontacts/internal/middleware"
	"github.com/mycontacts/mycontacts/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key, X-Request-ID",
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var (
		userRepo    user.Repository
		contactRepo contact.Repository
	)
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		contactRepo = contact.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
	}

	tokens, err := auth.NewTokenIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}
	authSvc := auth.NewService(userRepo, tokens, d.Cfg.BcryptCost)
	contactSvc := contact.NewService(contactRepo)

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginAttemptsPerMinute)
	RegisterAuthRoutes(app, auth.NewHandler(authSvc, d.Logger), rateLimiter)

	// Protected routes
	RegisterContactRoutes(app, contact.NewHandler(contactSvc),
		middleware.BearerAuth(tokens),
		middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger),
	)

	return nil
}
