package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// AttachTraceContext echoes or mints the request and trace ids, stores them with the
// route template in the request context, and once the handler chain has run tags
// the active span with the scouting actor resolved by the auth middleware.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		span := trace.SpanFromContext(c.Request.Context())
		traceID := strings.TrimSpace(c.GetHeader(headerTraceID))
		if traceID == "" && span.SpanContext().HasTraceID() {
			traceID = span.SpanContext().TraceID().String()
		}
		if traceID == "" {
			traceID = uuid.New().String()
		}

		td := &ctxutil.TraceData{TraceID: traceID, RequestID: reqID, Route: c.FullPath()}
		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)

		c.Next()

		// Auth runs later in the chain and replaces c.Request with the actor context.
		if actor := ctxutil.GetActor(c.Request.Context()); actor != nil {
			span.SetAttributes(
				attribute.String("hoopscout.actor_id", actor.ID.String()),
				attribute.String("hoopscout.role", string(actor.Role)),
			)
		}
		span.SetAttributes(attribute.String("hoopscout.request_id", reqID))
	}
}
