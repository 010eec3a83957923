package ctxutil

import "context"

type traceDataKey struct{}

// TraceData ties one API call together across response headers, request logs and
// aggregate write logs.
type TraceData struct {
	TraceID   string
	RequestID string
	// Route is the matched gin template (/api/evaluations/:id), empty on 404s.
	Route string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns the non-empty ids as logger key/values. Safe on nil.
func (td *TraceData) LogFields() []interface{} {
	if td == nil {
		return nil
	}
	out := make([]interface{}, 0, 6)
	if td.TraceID != "" {
		out = append(out, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		out = append(out, "request_id", td.RequestID)
	}
	if td.Route != "" {
		out = append(out, "route", td.Route)
	}
	return out
}

// CallerFields joins the trace ids with the authenticated actor, if any.
func CallerFields(ctx context.Context) []interface{} {
	fields := GetTraceData(ctx).LogFields()
	if a := GetActor(ctx); a != nil {
		fields = append(fields, "actor_id", a.ID.String(), "role", string(a.Role))
	}
	return fields
}
