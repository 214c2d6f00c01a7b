package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studypulse/studypulse-api/internal/config"
	"github.com/studypulse/studypulse-api/internal/events"
	"github.com/studypulse/studypulse-api/internal/handler"
	"github.com/studypulse/studypulse-api/internal/middleware"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
	"github.com/studypulse/studypulse-api/internal/router"
	"github.com/studypulse/studypulse-api/internal/service"
	"github.com/studypulse/studypulse-api/internal/store"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &store.Slot{}))

	mini := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	bus := events.NewBus(nil, nil, "", logger)
	slots := store.NewGormStore(db)

	gradeRepo := repository.NewGradeRepository(slots, bus, logger)
	assignmentRepo := repository.NewAssignmentRepository(slots, bus, logger)
	attendanceRepo := repository.NewAttendanceRepository(slots, bus, logger)
	studyRepo := repository.NewStudyRepository(slots, bus, logger)
	userRepo := repository.NewUserRepository(db)

	cfg := config.Config{AppName: "StudyPulse API", AppEnv: "test", JWTSecret: "integration-secret", TokenTTL: time.Hour}

	gradeService := service.NewGradeService(gradeRepo, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, validate, logger)
	plannerService := service.NewPlannerService(studyRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, logger)
	// Dashboard caching is exercised in its service tests; the end-to-end
	// flow runs uncached so writes are visible immediately.
	dashboardService := service.NewDashboardService(gradeRepo, assignmentRepo, attendanceRepo, studyRepo, nil, 0, nil, logger)
	authService := service.NewAuthService(userRepo, redisClient, nil, validate, cfg.JWTSecret, cfg.TokenTTL, logger)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		GradeHandler:      handler.NewGradeHandler(gradeService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		PlannerHandler:    handler.NewPlannerHandler(plannerService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret, authService),
	})

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	if target != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, target))
	}
}

func TestAPIEndToEnd(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Protected routes reject anonymous requests.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Alex Johnson",
		"email":    "alex@example.com",
		"password": "correct horse",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &session)
	require.NotEmpty(t, session.Token)

	// Seeded state: twelve subjects, no grades yet.
	var dashboard struct {
		GPA struct {
			Current float64 `json:"current"`
		} `json:"gpa"`
		Attendance struct {
			Percentage float64 `json:"percentage"`
			Risk       string  `json:"risk"`
		} `json:"attendance"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard", session.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &dashboard)
	require.Zero(t, dashboard.GPA.Current)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/grades", session.Token, map[string]interface{}{
		"subject_id": 1,
		"grade":      "A",
		"semester":   "Fall 2023",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard", session.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &dashboard)
	require.InDelta(t, 3.7, dashboard.GPA.Current, 1e-9)

	// Unknown letters are rejected, not coerced.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/grades", session.Token, map[string]interface{}{
		"subject_id": 1,
		"grade":      "G",
		"semester":   "Fall 2023",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/attendance/mark", session.Token, map[string]interface{}{
		"subject_id": 1,
		"status":     "present",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Logout denylists the session; the same token is then rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", session.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/dashboard", session.Token, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAssignmentLifecycle(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     "Alex Johnson",
		"email":    "alex@example.com",
		"password": "correct horse",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &session)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/assignments", session.Token, map[string]interface{}{
		"title":           "Graph Coloring Lab",
		"description":     "Implement greedy graph coloring and compare against brute force.",
		"subject":         "Data Structures & Algorithms",
		"due_date":        "2026-10-01",
		"priority":        "high",
		"estimated_hours": 4,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		ID int `json:"id"`
	}
	decodeData(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/assignments/"+strconv.Itoa(created.ID), session.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/assignments/"+strconv.Itoa(created.ID), session.Token, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
