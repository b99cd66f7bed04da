package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logpile/logpile/pkg/query"
	"github.com/logpile/logpile/pkg/schema"
	"github.com/logpile/logpile/pkg/sink"
)

// LogHandler exposes the sink's write and read paths over HTTP
type LogHandler struct {
	sink *sink.Sink
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(s *sink.Sink) *LogHandler {
	return &LogHandler{sink: s}
}

// Write handles POST /api/logs
func (h *LogHandler) Write(c *gin.Context) {
	var rec schema.Record
	if !BindJSON(c, &rec) {
		return
	}

	if err := h.sink.Write(c.Request.Context(), rec); err != nil {
		RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "logged"})
}

// Query handles POST /api/logs/query.
// Unpaginated requests answer { "rows": [...] }; paginated requests
// answer { "page": { rows, row_count, limit, page, total } }.
func (h *LogHandler) Query(c *gin.Context) {
	var req query.Request
	if !BindJSON(c, &req) {
		return
	}

	rows, page, err := h.sink.Query(c.Request.Context(), req)
	if err != nil {
		RespondAppError(c, err)
		return
	}

	if page != nil {
		c.JSON(http.StatusOK, gin.H{"page": page})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// Health handles GET /api/health
func (h *LogHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"table":  h.sink.Table().Name,
		"level":  h.sink.Level(),
	})
}

// Register wires the handler's routes onto the engine
func (h *LogHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/logs", h.Write)
	api.POST("/logs/query", h.Query)
	api.GET("/health", h.Health)
}
