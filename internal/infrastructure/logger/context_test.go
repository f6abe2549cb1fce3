package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_Fallback(t *testing.T) {
	l := FromContext(context.Background())

	require.NotNil(t, l)
	// no logger attached: the nop logger must swallow everything safely
	l.Info("dropped")
}

func TestWithContext_RoundTrip(t *testing.T) {
	base := zap.NewNop()

	ctx := WithContext(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
}

func TestEnrichment(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := context.Background()
	ctx, l := WithRequestID(ctx, base, "req-123")
	ctx, l = WithCartSession(ctx, l, "sess-456")
	ctx, l = WithUserID(ctx, l, "user-789")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, "sess-456", GetCartSession(ctx))
	assert.Equal(t, "user-789", GetUserID(ctx))

	// the last enriched logger is the one attached to the context
	FromContext(ctx).Info("order placed")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "sess-456", fields["cart_session"])
	assert.Equal(t, "user-789", fields["user_id"])
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetCartSession(ctx))
}
