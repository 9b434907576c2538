package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) chat(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Context building is best-effort: a storage hiccup degrades the
	// answer, it does not fail the request.
	organizerContext := s.buildOrganizerContext(ctx)

	reply, err := s.assistant.GenerateReply(ctx, req.Message, organizerContext)
	if err != nil {
		s.logger.ErrorContext(ctx, "Assistant reply failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// buildOrganizerContext renders the user's open todos and goals as
// plain text for the assistant prompt.
func (s *Server) buildOrganizerContext(ctx context.Context) string {
	var b strings.Builder

	todos, err := s.store.ListTodos(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load todos for assistant context", "error", err)
	} else if len(todos) > 0 {
		b.WriteString("Todos:\n")
		for i := range todos {
			t := &todos[i]
			status := "open"
			if t.Completed {
				status = "done"
			}
			fmt.Fprintf(&b, "- [%s] %s", status, t.Title)
			if t.DueDate.Valid {
				fmt.Fprintf(&b, " (due %s", t.DueDate.String)
				if t.DueTime.Valid {
					fmt.Fprintf(&b, " %s", t.DueTime.String)
				}
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
	}

	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load goals for assistant context", "error", err)
	} else if len(goals) > 0 {
		b.WriteString("Goals:\n")
		for i := range goals {
			g := &goals[i]
			fmt.Fprintf(&b, "- %s (%d%%", g.Title, g.Progress)
			if g.TargetDate.Valid {
				fmt.Fprintf(&b, ", target %s", g.TargetDate.String)
			}
			b.WriteString(")\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
