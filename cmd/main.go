package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/grupo4/clientes-api/internal/captcha"
	"github.com/grupo4/clientes-api/internal/config"
	"github.com/grupo4/clientes-api/internal/handler"
	"github.com/grupo4/clientes-api/internal/handler/middleware"
	"github.com/grupo4/clientes-api/internal/repository/postgres"
	"github.com/grupo4/clientes-api/internal/service"
	"github.com/grupo4/clientes-api/pkg/csrf"
	"github.com/grupo4/clientes-api/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Pick the captcha store: in-process by default, Redis when the service
	// runs with more than one instance.
	var captchaStore captcha.Store
	if cfg.Auth.CaptchaStore == "redis" {
		redisClient, err := initRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
		captchaStore = captcha.NewRedisStore(redisClient)
		log.Println("✓ Redis captcha store initialized")
	} else {
		captchaStore = captcha.NewMemoryStore(cfg.Auth.CaptchaCapacity)
		log.Println("✓ In-memory captcha store initialized")
	}

	if cfg.CSRF.Secret == config.PlaceholderCSRFSecret {
		log.Println("⚠ CSRF_SECRET not set; running with the development placeholder")
	}

	// Initialize validator and CSRF deriver
	validate := validator.NewValidator()
	deriver := csrf.NewDeriver(cfg.CSRF.Secret)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	permisoRepo := postgres.NewPermisoRepository(db)
	clienteRepo := postgres.NewClienteRepository(db)
	auditoriaRepo := postgres.NewAuditoriaRepository(db)

	// Initialize services
	auditoriaService := service.NewAuditoriaService(auditoriaRepo)
	captchaService := captcha.NewService(captchaStore, cfg.Auth.CaptchaTTL)
	authService := service.NewAuthService(userRepo, sessionRepo, captchaService, deriver, auditoriaService, cfg.Auth.SessionTTL)
	clienteService := service.NewClienteService(clienteRepo, auditoriaService)

	// Initialize handlers
	secureCookie := cfg.Server.Environment == "production"
	authHandler := handler.NewAuthHandler(authService, captchaService, validate, secureCookie)
	clienteHandler := handler.NewClienteHandler(clienteService)
	healthHandler := handler.NewHealthHandler()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Clientes API v1.0",
		ErrorHandler: customErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware(cfg.Server.FrontendOrigin))

	loginLimiter := middleware.LoginRateLimiter(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)

	// Setup routes
	handler.SetupRoutes(
		app,
		authHandler,
		clienteHandler,
		healthHandler,
		sessionRepo,
		permisoRepo,
		deriver,
		loginLimiter,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 Server starting on http://localhost%s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

// initDB initializes the PostgreSQL connection pool with retry logic
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Error closing database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// initRedis initializes the Redis client and verifies the connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// customErrorHandler converts unhandled Fiber errors into generic JSON
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Error interno del servidor"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error handling request [%s %s]: %v", c.Method(), c.Path(), err)

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
