package middleware

import (
	"meeplelog/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

const (
	// TraceIDHeader carries the client-supplied trace ID, echoed back on
	// every response.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLocalKey is the Fiber locals key for the trace ID.
	TraceIDLocalKey = "traceID"
)

// TraceID attaches a trace ID to each request, minting one when the client
// did not send its own, and threads it through the logger context.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" {
			traceID = models.NewID()
		}

		c.Set(TraceIDHeader, traceID)
		c.Locals(TraceIDLocalKey, traceID)
		c.SetUserContext(logger.ContextWithTraceID(c.Context(), traceID))

		return c.Next()
	}
}

// GetTraceID reads the trace ID back out of Fiber locals.
func GetTraceID(c *fiber.Ctx) string {
	if traceID, ok := c.Locals(TraceIDLocalKey).(string); ok {
		return traceID
	}
	return ""
}
