package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterSetSweepsIdleBuckets(t *testing.T) {
	ls := newLimiterSet(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})
	now := time.Now()

	ok, _ := ls.allow("a", now)
	require.True(t, ok)
	ok, wait := ls.allow("a", now)
	require.False(t, ok)
	require.Positive(t, wait)

	later := now.Add(ls.idleAfter)
	ok, _ = ls.allow("b", later)
	require.True(t, ok)

	ls.mu.Lock()
	_, kept := ls.buckets["a"]
	ls.mu.Unlock()
	require.False(t, kept, "idle bucket should be swept")
}
