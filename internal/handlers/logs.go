package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pumpjack_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"

	errLoadLogs = "failed to load logs"
)

var queryTimeLayouts = []string{time.RFC3339Nano, layoutDateTime, layoutDate}

// queryError is a client mistake in the query string.
type queryError struct {
	param string
	err   error
}

func (e *queryError) Error() string { return fmt.Sprintf("invalid '%s': %v", e.param, e.err) }
func (e *queryError) Unwrap() error { return e.err }

// @Summary      List logs
// @Description  Filter logs by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD') and type. A date-only 'to' covers the whole day. 'limit' keeps the most recent N events.
// @Tags         logs
// @Produce      json
// @Param        from   query   string  false  "Start of range (inclusive)"  example(2025-08-01)
// @Param        to     query   string  false  "End of range (inclusive). Date-only treated as end of day."  example(2025-08-31)
// @Param        type   query   string  false  "Event type"  Enums(START,STOP,TARGET_CHANGE,ALARM_RAISED,ALARM_CLEARED,ROLLUP,ERROR)
// @Param        limit  query   int     false  "Most recent N events (max 1000)"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	filter, err := parseLogFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEventType) ||
			errors.Is(err, service.ErrInvalidTimeRange) ||
			errors.Is(err, service.ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadLogs, "logs_list_failed", err,
			"from", filter.From, "to", filter.To, "type", filter.Type, "limit", filter.Limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseLogFilter reads from, to, type and limit. Range and type semantics are
// checked by the service.
func parseLogFilter(c *gin.Context) (service.LogFilter, error) {
	f := service.LogFilter{Type: strings.ToUpper(strings.TrimSpace(c.Query("type")))}

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return service.LogFilter{}, &queryError{param: "from", err: err}
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return service.LogFilter{}, &queryError{param: "to", err: err}
		}
		if !strings.ContainsAny(qs, "T ") {
			// whole day, inclusive
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil {
			return service.LogFilter{}, &queryError{param: "limit", err: err}
		}
		f.Limit = n
	}
	return f, nil
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time %q, use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
