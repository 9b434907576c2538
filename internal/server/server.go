// Package server exposes the MyLife REST API. Handlers are thin: they
// bind and validate input, call the storage layer or a background
// service, and map errors to HTTP statuses.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vedant-maheshwari09/mylife/internal/assistant"
	"github.com/vedant-maheshwari09/mylife/internal/database"
	"github.com/vedant-maheshwari09/mylife/internal/logger"
	"github.com/vedant-maheshwari09/mylife/internal/scheduler"
)

// Server wires the REST API to the storage layer, the assistant, and
// the background services' manual triggers.
type Server struct {
	logger    *slog.Logger
	store     database.Store
	assistant assistant.Client // nil when the assistant is disabled
	reminder  *scheduler.ReminderService
	cleanup   *scheduler.CleanupService
	engine    *gin.Engine
}

// New creates the API server and registers all routes.
func New(
	log *slog.Logger,
	store database.Store,
	assistantClient assistant.Client,
	reminder *scheduler.ReminderService,
	cleanup *scheduler.CleanupService,
) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		logger:    log.With("component", "server"),
		store:     store,
		assistant: assistantClient,
		reminder:  reminder,
		cleanup:   cleanup,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.Middleware(s.logger))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	engine.GET("/healthz", s.health)

	api := engine.Group("/api/v1")
	{
		todos := api.Group("/todos")
		todos.POST("", s.createTodo)
		todos.GET("", s.listTodos)
		todos.GET("/overdue", s.listOverdueTodos)
		todos.GET("/:id", s.getTodo)
		todos.PATCH("/:id", s.updateTodo)
		todos.DELETE("/:id", s.deleteTodo)
		todos.POST("/:id/complete", s.completeTodo)

		notes := api.Group("/notes")
		notes.POST("", s.createNote)
		notes.GET("", s.listNotes)
		notes.GET("/:id", s.getNote)
		notes.PATCH("/:id", s.updateNote)
		notes.DELETE("/:id", s.deleteNote)

		goals := api.Group("/goals")
		goals.POST("", s.createGoal)
		goals.GET("", s.listGoals)
		goals.GET("/:id", s.getGoal)
		goals.PATCH("/:id", s.updateGoal)
		goals.DELETE("/:id", s.deleteGoal)

		activities := api.Group("/activities")
		activities.POST("", s.createActivity)
		activities.GET("", s.listActivities)
		activities.DELETE("/:id", s.deleteActivity)

		moods := api.Group("/moods")
		moods.POST("", s.createMoodEntry)
		moods.GET("", s.listMoodEntries)

		api.POST("/chat", s.chat)

		admin := api.Group("/admin")
		admin.POST("/reminders/run", s.runReminders)
		admin.POST("/cleanup/run", s.runCleanup)
	}

	s.engine = engine
	return s
}

// Handler returns the http.Handler for the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID extracts a positive int64 path parameter, writing a 400
// response and returning false when it is malformed.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
