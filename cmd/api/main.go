package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/config"
	"github.com/studypulse/studypulse-api/internal/database"
	"github.com/studypulse/studypulse-api/internal/events"
	"github.com/studypulse/studypulse-api/internal/handler"
	"github.com/studypulse/studypulse-api/internal/middleware"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
	"github.com/studypulse/studypulse-api/internal/router"
	"github.com/studypulse/studypulse-api/internal/service"
	"github.com/studypulse/studypulse-api/internal/store"
	cloud "github.com/studypulse/studypulse-api/pkg/cloudinary"
	"github.com/studypulse/studypulse-api/pkg/predict"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectGorm(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &store.Slot{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	gateway, err := predict.NewOpenAIGateway(predict.OpenAIConfig{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.AIModel,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("failed to create prediction gateway: %v", err)
	}

	appCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()

	bus := events.NewBus(redisClient, natsConn, "studypulse", logger)
	bus.Start(appCtx)

	validate := validator.New(validator.WithRequiredStructEnabled())
	slots := store.NewGormStore(db)

	gradeRepo := repository.NewGradeRepository(slots, bus, logger)
	assignmentRepo := repository.NewAssignmentRepository(slots, bus, logger)
	attendanceRepo := repository.NewAttendanceRepository(slots, bus, logger)
	studyRepo := repository.NewStudyRepository(slots, bus, logger)
	userRepo := repository.NewUserRepository(db)

	gradeService := service.NewGradeService(gradeRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, validate, logger)
	plannerService := service.NewPlannerService(studyRepo, validate, logger)
	dashboardService := service.NewDashboardService(gradeRepo, assignmentRepo, attendanceRepo, studyRepo, redisClient, cfg.DashboardCacheTTL, bus, logger)
	dashboardService.Start(appCtx)
	predictionService := service.NewPredictionService(gateway, gradeRepo, assignmentRepo, attendanceRepo, studyRepo, validate, logger)
	profileService := service.NewProfileService(userRepo, uploader, validate, logger)

	var verifier service.GoogleVerifier
	if cfg.GoogleClientID != "" {
		verifier = service.NewGoogleVerifier(cfg.GoogleClientID)
	}
	authService := service.NewAuthService(userRepo, redisClient, verifier, validate, cfg.JWTSecret, cfg.TokenTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		GradeHandler:      handler.NewGradeHandler(gradeService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		PlannerHandler:    handler.NewPlannerHandler(plannerService, logger),
		PredictionHandler: handler.NewPredictionHandler(predictionService, logger),
		ProfileHandler:    handler.NewProfileHandler(profileService, logger),
		EventsHandler:     handler.NewEventsHandler(bus, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret, authService),
		PredictionLimiter: middleware.RateLimit("predictions", 10, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
