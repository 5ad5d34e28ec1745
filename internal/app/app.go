package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/controller"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/service"
	"pahamkode_backend/pkg/configwatcher"
	"pahamkode_backend/pkg/database"
	"pahamkode_backend/pkg/logger"
	"pahamkode_backend/pkg/monitoring"
	"pahamkode_backend/pkg/security"
	"pahamkode_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	submission *repository.SubmissionRepository
	pattern    *repository.PatternRepository
	progress   *repository.ProgressRepository
	resource   *repository.ResourceRepository
	exercise   *repository.ExerciseRepository
	aiMetric   *repository.AIMetricRepository
}

type services struct {
	auth       *service.AuthService
	classifier *service.ClassifierService
	mastery    *service.MasteryService
	pattern    *service.PatternService
	analysis   *service.AnalysisService
	student    *service.StudentService
	exercise   *service.ExerciseService
	content    *service.ContentService
	admin      *service.AdminService
}

type controllers struct {
	auth     *controller.AuthController
	analysis *controller.AnalysisController
	pattern  *controller.PatternController
	student  *controller.StudentController
	exercise *controller.ExerciseController
	content  *controller.ContentController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		submission: repository.NewSubmissionRepository(db),
		pattern:    repository.NewPatternRepository(db),
		progress:   repository.NewProgressRepository(db),
		resource:   repository.NewResourceRepository(db),
		exercise:   repository.NewExerciseRepository(db),
		aiMetric:   repository.NewAIMetricRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg.JWT)
	s.classifier = service.NewClassifierService(cfg.AI, repos.aiMetric)
	s.mastery = service.NewMasteryService(repos.submission, repos.progress)
	s.pattern = service.NewPatternService(
		repos.submission,
		repos.pattern,
		s.mastery,
		cfg.Analysis.RecurrenceThreshold,
		cfg.Analysis.MaxRecommendedTopic,
	)
	s.analysis = service.NewAnalysisService(s.classifier, repos.submission, repos.user, s.pattern)
	s.student = service.NewStudentService(repos.submission, repos.pattern, repos.progress, repos.resource)
	s.exercise = service.NewExerciseService(repos.exercise, repos.progress)
	s.content = service.NewContentService(repos.resource)
	s.admin = service.NewAdminService(
		db,
		rdb,
		cfg.Analysis.DashboardCacheTTL,
		repos.submission,
		repos.pattern,
		repos.progress,
		repos.user,
		repos.aiMetric,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		analysis: controller.NewAnalysisController(s.analysis),
		pattern:  controller.NewPatternController(s.pattern),
		student:  controller.NewStudentController(s.student),
		exercise: controller.NewExerciseController(s.exercise),
		content:  controller.NewContentController(s.content),
		admin:    controller.NewAdminController(s.admin),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis hanya untuk cache dashboard; tanpa Redis layanan tetap jalan.
		logger.Log.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("pahamkode", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// Konfigurasi AI bisa diganti tanpa restart; watcher memuat ulang file
	// dan mendorong nilai baru ke classifier.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.classifier.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI configuration reloaded",
			zap.String("model", newCfg.AI.Model))
	})

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

	logger.Log.Sync()
	log.Println("Server exiting")
}
