package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxCartID   contextKey = "cart_id"
	ctxViewerID contextKey = "viewer_id"
)

// CartIDFromContext returns the cart bound to the request, or uuid.Nil.
func CartIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxCartID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// ViewerIDFromContext returns the viewer identity for the request.
func ViewerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxViewerID).(string); ok {
		return v
	}
	return ""
}

// WithCartID injects the cart identifier into the context.
func WithCartID(ctx context.Context, cartID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartID, cartID)
}

// WithViewerID injects the viewer identifier into the context.
func WithViewerID(ctx context.Context, viewerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxViewerID, viewerID)
}
