package feedstub

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const FeedPath = "/data/livecad.xml"

type Handler struct {
	storage *EventStorage
}

func NewHandler(storage *EventStorage) *Handler {
	return &Handler{storage: storage}
}

// Register mounts the feed and its control endpoints.
func (h *Handler) Register(r gin.IRouter) {
	r.GET(FeedPath, h.HandleFeed)
	r.POST("/stub/seed", h.HandleSeed)
	r.POST("/stub/fail", h.HandleFail)
	r.POST("/stub/reset", h.HandleReset)
}

func (h *Handler) HandleFeed(c *gin.Context) {
	status, events := h.storage.serve()
	if status != http.StatusOK {
		c.String(status, http.StatusText(status))
		return
	}

	slog.Debug("serving stub feed", slog.Int("event_count", len(events)))

	c.XML(http.StatusOK, ActiveIncidents{
		UpdatedAt: time.Now().Format("2006-01-02 15:04:05"),
		Events:    events,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.storage.Seed(req.Events)

	c.JSON(http.StatusOK, gin.H{
		"status":      "seeded",
		"event_count": len(req.Events),
	})
}

func (h *Handler) HandleFail(c *gin.Context) {
	var req FailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.storage.FailNext(req.Count, req.StatusCode)

	c.JSON(http.StatusOK, gin.H{"status": "failing", "count": req.Count})
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}

// NewServer starts a stub feed for the duration of the test and returns
// the storage behind it and the full feed URL.
func NewServer(t *testing.T) (*EventStorage, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	storage := NewEventStorage()
	r := gin.New()
	NewHandler(storage).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return storage, srv.URL + FeedPath
}
