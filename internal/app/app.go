package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prafuldivani/quiz-app/internal/config"
	"github.com/prafuldivani/quiz-app/internal/controller"
	"github.com/prafuldivani/quiz-app/internal/ratelimit"
	"github.com/prafuldivani/quiz-app/internal/repository"
	"github.com/prafuldivani/quiz-app/internal/service"
	"github.com/prafuldivani/quiz-app/pkg/database"
	"github.com/prafuldivani/quiz-app/pkg/logger"
	"github.com/prafuldivani/quiz-app/pkg/monitoring"
	"github.com/prafuldivani/quiz-app/pkg/security"
	"github.com/prafuldivani/quiz-app/pkg/storage"
	"github.com/prafuldivani/quiz-app/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config        *config.Config
	Router        *gin.Engine
	DB            *gorm.DB
	Redis         *redis.Client
	submitLimiter *ratelimit.Swappable
}

type repositories struct {
	user    *repository.UserRepository
	quiz    *repository.QuizRepository
	attempt *repository.AttemptRepository
}

type services struct {
	auth    *service.AuthService
	quiz    *service.QuizService
	attempt *service.AttemptService
	storage storage.Provider
}

type controllers struct {
	auth   *controller.AuthController
	quiz   *controller.QuizController
	public *controller.PublicController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		quiz:    repository.NewQuizRepository(db),
		attempt: repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	store, err := storage.NewProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}
	s.storage = store

	s.auth = service.NewAuthService(repos.user, cfg)
	s.quiz = service.NewQuizService(repos.quiz)
	s.attempt = service.NewAttemptService(repos.quiz, repos.attempt, s.quiz)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		quiz:   controller.NewQuizController(s.quiz, s.attempt, s.storage),
		public: controller.NewPublicController(s.quiz, s.attempt),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(100000, time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newSubmitLimiter builds the submission throttle from config: a shared
// redis window when redis is configured, a per-process token bucket
// otherwise.
func (a *App) newSubmitLimiter(cfg *config.Config) ratelimit.Limiter {
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if a.Redis != nil {
		return ratelimit.NewRedisLimiter(a.Redis, cfg.RateLimit.MaxRequests, window)
	}
	return ratelimit.NewMemoryLimiter(cfg.RateLimit.MaxRequests, window)
}

// OnConfigReload is the configwatcher callback. Only the submission
// throttle budget is hot-swappable; everything wired at startup keeps its
// original settings.
func (a *App) OnConfigReload(cfg *config.Config) {
	a.submitLimiter.Swap(a.newSubmitLimiter(cfg))
	logger.Log.Info("config reloaded",
		zap.Int("rate_limit_max_requests", cfg.RateLimit.MaxRequests),
		zap.Int("rate_limit_window_minutes", cfg.RateLimit.WindowMinutes))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	if cfg.MigrateOnly {
		return app
	}

	app.submitLimiter = ratelimit.NewSwappable(app.newSubmitLimiter(cfg))

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quiz-app", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
