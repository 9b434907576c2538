package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vedant-maheshwari09/mylife/internal/database"
)

type createGoalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	TargetDate  *string `json:"target_date" binding:"omitempty,datetime=2006-01-02"`
	Progress    int     `json:"progress" binding:"min=0,max=100"`
}

type updateGoalRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	TargetDate  *string `json:"target_date" binding:"omitempty,datetime=2006-01-02"`
	Progress    *int    `json:"progress" binding:"omitempty,min=0,max=100"`
	Completed   *bool   `json:"completed"`
}

type goalResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetDate  *string   `json:"target_date,omitempty"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func goalToResponse(g *database.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		TargetDate:  nullStringPtr(g.TargetDate),
		Progress:    g.Progress,
		Completed:   g.Completed,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (s *Server) createGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := &database.Goal{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  toNullString(req.TargetDate),
		Progress:    req.Progress,
	}

	if err := s.store.CreateGoal(c.Request.Context(), goal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, goalToResponse(goal))
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.store.ListGoals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, goalToResponse(&goals[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (s *Server) getGoal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	goal, err := s.store.GetGoal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, goalToResponse(goal))
}

func (s *Server) updateGoal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := s.store.GetGoal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetDate != nil {
		goal.TargetDate = toNullString(req.TargetDate)
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if req.Completed != nil {
		goal.Completed = *req.Completed
		if goal.Completed {
			goal.Progress = 100
		}
	}

	if err := s.store.UpdateGoal(c.Request.Context(), goal); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, goalToResponse(goal))
}

func (s *Server) deleteGoal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteGoal(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
