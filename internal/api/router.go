package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/teamtasks/task-system/internal/api/handler"
	"github.com/teamtasks/task-system/internal/api/middleware"
	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/service"
	"github.com/teamtasks/task-system/internal/infrastructure/db/postgres"
	redisdb "github.com/teamtasks/task-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("teamtasks"))

	// --- Repositories ---
	users := postgres.NewUserRepository(pool)
	teams := postgres.NewTeamRepository(pool)
	tasks := postgres.NewTaskRepository(pool)
	notes := postgres.NewNoteRepository(pool)
	resets := postgres.NewPasswordResetRepository(pool)
	sessions := redisdb.NewSessionStore(rdb, sessionTTL)

	// --- Services ---
	authService := service.NewAuthService(users, teams, resets, sessions, log)
	taskService := service.NewTaskService(tasks, notes, users, log)
	teamService := service.NewTeamService(users, log)
	transferService := service.NewTransferService(tasks, notes, users, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	taskHandler := handler.NewTaskHandler(taskService)
	teamHandler := handler.NewTeamHandler(teamService)
	transferHandler := handler.NewTransferHandler(transferService)

	sessionMW := middleware.Session(sessions, users)
	managerOnly := middleware.RequireRole(domain.RoleManager)

	// --- Auth routes ---
	e.POST("/auth/bootstrap", authHandler.Bootstrap)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot", authHandler.Forgot)
	e.POST("/auth/reset", authHandler.Reset)
	e.POST("/auth/logout", authHandler.Logout, sessionMW)

	// --- Task routes ---
	v1 := e.Group("/v1", sessionMW)
	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)
	v1.POST("/tasks/:id/status", taskHandler.UpdateStatus)
	v1.POST("/tasks/:id/assign", taskHandler.Assign, managerOnly)
	v1.POST("/tasks/:id/notes", taskHandler.AddNote)
	v1.DELETE("/tasks/:id/notes/:note_id", taskHandler.DeleteNote)

	// --- Team membership routes ---
	v1.GET("/team/members", teamHandler.ListMembers)
	v1.POST("/team/members", teamHandler.AddMember, managerOnly)
	v1.DELETE("/team/members/:id", teamHandler.RemoveMember, managerOnly)
	v1.POST("/team/members/:id/role", teamHandler.ChangeRole, managerOnly)

	// --- Import / export ---
	v1.GET("/export", transferHandler.Export, managerOnly)
	v1.POST("/import", transferHandler.Import, managerOnly)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
