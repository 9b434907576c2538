package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vedant-maheshwari09/mylife/internal/database"
)

type createActivityRequest struct {
	Title           string     `json:"title" binding:"required"`
	Notes           string     `json:"notes"`
	DurationMinutes int        `json:"duration_minutes" binding:"min=0"`
	OccurredAt      *time.Time `json:"occurred_at"`
}

type activityResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Notes           string    `json:"notes"`
	DurationMinutes int       `json:"duration_minutes"`
	OccurredAt      time.Time `json:"occurred_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func activityToResponse(a *database.Activity) activityResponse {
	return activityResponse{
		ID:              a.ID,
		Title:           a.Title,
		Notes:           a.Notes,
		DurationMinutes: a.DurationMinutes,
		OccurredAt:      a.OccurredAt,
		CreatedAt:       a.CreatedAt,
	}
}

func (s *Server) createActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	activity := &database.Activity{
		Title:           req.Title,
		Notes:           req.Notes,
		DurationMinutes: req.DurationMinutes,
		OccurredAt:      occurredAt,
	}

	if err := s.store.CreateActivity(c.Request.Context(), activity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, activityToResponse(activity))
}

func (s *Server) listActivities(c *gin.Context) {
	activities, err := s.store.ListActivities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]activityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, activityToResponse(&activities[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (s *Server) deleteActivity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteActivity(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type createMoodEntryRequest struct {
	Mood       string     `json:"mood" binding:"required"`
	Score      int        `json:"score" binding:"required,min=1,max=10"`
	Note       string     `json:"note"`
	RecordedAt *time.Time `json:"recorded_at"`
}

type moodEntryResponse struct {
	ID         int64     `json:"id"`
	Mood       string    `json:"mood"`
	Score      int       `json:"score"`
	Note       string    `json:"note"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func moodEntryToResponse(m *database.MoodEntry) moodEntryResponse {
	return moodEntryResponse{
		ID:         m.ID,
		Mood:       m.Mood,
		Score:      m.Score,
		Note:       m.Note,
		RecordedAt: m.RecordedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func (s *Server) createMoodEntry(c *gin.Context) {
	var req createMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil && !req.RecordedAt.IsZero() {
		recordedAt = req.RecordedAt.UTC()
	}

	entry := &database.MoodEntry{
		Mood:       req.Mood,
		Score:      req.Score,
		Note:       req.Note,
		RecordedAt: recordedAt,
	}

	if err := s.store.CreateMoodEntry(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, moodEntryToResponse(entry))
}

func (s *Server) listMoodEntries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := s.store.ListMoodEntries(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]moodEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, moodEntryToResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
