package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	attached := zap.NewNop().With(zap.String("request_id", "req-1"))
	ctx := ContextWithLogger(context.Background(), attached)

	if got := FromContext(ctx, zap.NewNop()); got != attached {
		t.Error("expected the attached logger back")
	}
}

func TestFromContext_FallsBack(t *testing.T) {
	fallback := zap.NewNop()

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Error("expected the fallback logger when none is attached")
	}
}

func TestFromContext_NilFallback(t *testing.T) {
	if got := FromContext(context.Background(), nil); got == nil {
		t.Error("nil fallback should yield a usable no-op logger")
	}
}
