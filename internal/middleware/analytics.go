package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// anonymousDistinctID identifies callers when write auth is disabled.
const anonymousDistinctID = "anonymous"

// EventTracker receives usage events.
type EventTracker interface {
	Enabled() bool
	Enqueue(distinctID, event string, properties map[string]any)
}

var analyticsSkipPaths = map[string]bool{
	"/health": true,
}

// AnalyticsMiddleware reports every successful API call to tracker.
// The event name is derived from the route, e.g. "/api/v1/reports/dre" becomes "api_v1_reports_dre".
func AnalyticsMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.Enabled() || analyticsSkipPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		distinctID, ok := GetUserIDFromCtx(c.Request.Context())
		if !ok {
			distinctID = anonymousDistinctID
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if company := c.Query("company"); company != "" {
			props["company"] = company
		}
		tracker.Enqueue(distinctID, eventName, props)
	}
}
