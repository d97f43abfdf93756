package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "claimdesk"

// Span attribute keys for the claim fields carried in LogFields.
const (
	AttrUserID         = attribute.Key("claimdesk.user_id")
	AttrClaimID        = attribute.Key("claimdesk.claim_id")
	AttrNotificationID = attribute.Key("claimdesk.notification_id")
	AttrMessageID      = attribute.Key("claimdesk.message_id")
	AttrTaskType       = attribute.Key("claimdesk.task_type")
	AttrRequestID      = attribute.Key("claimdesk.request_id")
	AttrComponent      = attribute.Key("claimdesk.component")
)

// SpanContext pairs a span with the context that carries it.
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan starts a child of the span in ctx. The LogFields in ctx become
// span attributes, so a trace shows which claim and user it touched.
//
//	sc := logger.StartSpan(ctx, "worker.sweep")
//	defer sc.End()
//	ctx = sc.Context()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	opts = append(opts, trace.WithAttributes(FieldAttributes(GetLogFields(ctx))...))
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &SpanContext{ctx: ctx, span: span}
}

// StartSpanFromTraceID continues a trace whose id crossed the Redis queue.
// An empty or malformed id starts a fresh trace.
func StartSpanFromTraceID(ctx context.Context, traceIDStr string, name string, opts ...trace.SpanStartOption) *SpanContext {
	traceID, err := trace.TraceIDFromHex(traceIDStr)
	if traceIDStr == "" || err != nil {
		return StartSpan(ctx, name, opts...)
	}

	remote := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
	return StartSpan(trace.ContextWithRemoteSpanContext(ctx, remote), name, opts...)
}

// FieldAttributes converts the set LogFields into span attributes.
// Unset fields are omitted.
func FieldAttributes(f LogFields) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 7)
	if f.UserID != nil {
		attrs = append(attrs, AttrUserID.Int64(*f.UserID))
	}
	if f.ClaimID != nil {
		attrs = append(attrs, AttrClaimID.Int64(*f.ClaimID))
	}
	if f.NotificationID != nil {
		attrs = append(attrs, AttrNotificationID.Int64(*f.NotificationID))
	}
	if f.MessageID != nil {
		attrs = append(attrs, AttrMessageID.String(*f.MessageID))
	}
	if f.TaskType != nil {
		attrs = append(attrs, AttrTaskType.String(*f.TaskType))
	}
	if f.RequestID != "" {
		attrs = append(attrs, AttrRequestID.String(f.RequestID))
	}
	if f.Component != "" {
		attrs = append(attrs, AttrComponent.String(f.Component))
	}
	return attrs
}

// AnnotateSpan copies the LogFields in ctx onto the span already recording
// in ctx. HTTP handlers call it after they learn the claim id.
func AnnotateSpan(ctx context.Context) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(FieldAttributes(GetLogFields(ctx))...)
}

func (sc *SpanContext) Context() context.Context {
	return sc.ctx
}

// End is safe to call more than once.
func (sc *SpanContext) End() {
	if sc.span != nil {
		sc.span.End()
	}
}

func (sc *SpanContext) RecordError(err error) {
	if sc.span != nil && err != nil {
		sc.span.RecordError(err)
	}
}

func (sc *SpanContext) Span() trace.Span {
	return sc.span
}
