package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/innlodge/lodgebook_app/internal/utils"
)

// analyticsEventName derives an event name from a matched route, dropping
// parameter segments: "/api/v1/properties/:property_id/cashbook/refresh"
// becomes "api_v1_properties_cashbook_refresh".
func analyticsEventName(routePath string) string {
	segments := strings.Split(strings.Trim(routePath, "/"), "/")
	kept := segments[:0]
	for _, seg := range segments {
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "_")
}

// PosthogMiddleware records one analytics event per successful authenticated
// request. Unmatched routes, failures and anonymous requests are not tracked.
func PosthogMiddleware(client *utils.PosthogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.IsEnabled() || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		eventName := analyticsEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method": c.Request.Method,
			"route":  c.FullPath(),
			"status": c.Writer.Status(),
		}
		if propertyID := c.Param("property_id"); propertyID != "" {
			props["property_id"] = propertyID
		}

		client.Enqueue(userID, eventName, props)
	}
}
