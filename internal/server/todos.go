package server

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vedant-maheshwari09/mylife/internal/database"
)

type createTodoRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	UserEmail   string     `json:"user_email" binding:"omitempty,email"`
	DueDate     *string    `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	DueTime     *string    `json:"due_time" binding:"omitempty,datetime=15:04"`
	ReminderAt  *time.Time `json:"reminder_at"`
}

type updateTodoRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	UserEmail   *string    `json:"user_email" binding:"omitempty,email"`
	DueDate     *string    `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	DueTime     *string    `json:"due_time" binding:"omitempty,datetime=15:04"`
	ReminderAt  *time.Time `json:"reminder_at"`
}

type todoResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	UserEmail    string     `json:"user_email"`
	DueDate      *string    `json:"due_date,omitempty"`
	DueTime      *string    `json:"due_time,omitempty"`
	ReminderAt   *time.Time `json:"reminder_at,omitempty"`
	ReminderSent bool       `json:"reminder_sent"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func todoToResponse(t *database.Todo) todoResponse {
	return todoResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		UserEmail:    t.UserEmail,
		DueDate:      nullStringPtr(t.DueDate),
		DueTime:      nullStringPtr(t.DueTime),
		ReminderAt:   nullTimePtr(t.ReminderAt),
		ReminderSent: t.ReminderSent,
		Completed:    t.Completed,
		CompletedAt:  nullTimePtr(t.CompletedAt),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func todosToResponses(todos []database.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, todoToResponse(&todos[i]))
	}
	return out
}

func (s *Server) createTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo := &database.Todo{
		Title:       req.Title,
		Description: req.Description,
		UserEmail:   req.UserEmail,
		DueDate:     toNullString(req.DueDate),
		DueTime:     toNullString(req.DueTime),
		ReminderAt:  toNullTime(req.ReminderAt),
	}

	if err := s.store.CreateTodo(c.Request.Context(), todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(todo))
}

func (s *Server) listTodos(c *gin.Context) {
	todos, err := s.store.ListTodos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": todosToResponses(todos)})
}

func (s *Server) listOverdueTodos(c *gin.Context) {
	todos, err := s.store.ListOverdueTodos(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": todosToResponses(todos)})
}

func (s *Server) getTodo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	todo, err := s.store.GetTodo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, todoToResponse(todo))
}

func (s *Server) updateTodo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := s.store.GetTodo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.UserEmail != nil {
		todo.UserEmail = *req.UserEmail
	}
	if req.DueDate != nil {
		todo.DueDate = toNullString(req.DueDate)
	}
	if req.DueTime != nil {
		todo.DueTime = toNullString(req.DueTime)
	}
	if req.ReminderAt != nil {
		// Moving the reminder re-arms it.
		todo.ReminderAt = toNullTime(req.ReminderAt)
		todo.ReminderSent = false
	}

	if err := s.store.UpdateTodo(c.Request.Context(), todo); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, todoToResponse(todo))
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteTodo(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) completeTodo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	todo, err := s.store.CompleteTodo(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, todoToResponse(todo))
}

func toNullString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func toNullTime(v *time.Time) sql.NullTime {
	if v == nil || v.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}
