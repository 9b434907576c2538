package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// runReminders triggers one reminder pass outside the schedule. The
// pass itself never returns an error; failures are logged by the
// service and the batch continues.
func (s *Server) runReminders(c *gin.Context) {
	s.reminder.TriggerCheck()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// runCleanup triggers one cleanup pass and reports how many todos it
// removed.
func (s *Server) runCleanup(c *gin.Context) {
	removed, err := s.cleanup.ManualCleanup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
