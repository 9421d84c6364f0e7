package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

// Handler serves the JSON API over one database and its progress engine.
type Handler struct {
	db              *sql.DB
	engine          *nutrition.Engine
	baseMaintenance int
	logger          *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(db *sql.DB, engine *nutrition.Engine, baseMaintenance int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseMaintenance <= 0 {
		baseMaintenance = nutrition.DefaultBaseMaintenance
	}
	return &Handler{db: db, engine: engine, baseMaintenance: baseMaintenance, logger: logger}
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// fail maps service errors onto status codes. Storage failures are logged
// and reported without detail.
func (h *Handler) fail(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		errorJSON(c, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrInvalid):
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "internal error")
	}
}

// day reads a date query parameter. Absent means today; a bad value writes
// a 400 and returns false.
func (h *Handler) day(c *gin.Context, name string) (time.Time, bool) {
	d, ok := nutrition.ParseDay(c.Query(name), h.engine.Today())
	if !ok {
		errorJSON(c, http.StatusBadRequest, "Invalid date format")
		return time.Time{}, false
	}
	return d, true
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorJSON(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

var loggedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// loggedAt resolves an explicit timestamp, or a day combined with the
// current clock time. Zero means now.
func (h *Handler) loggedAt(raw, day string) (time.Time, error) {
	if raw = strings.TrimSpace(raw); raw != "" {
		for _, layout := range loggedAtLayouts {
			if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errors.New("invalid logged_at")
	}
	if day = strings.TrimSpace(day); day != "" {
		now := time.Now()
		d, ok := nutrition.ParseDay(day, now)
		if !ok {
			return time.Time{}, errors.New("invalid date format")
		}
		return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local), nil
	}
	return time.Time{}, nil
}
