package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstAbsorbsTabFanOut(t *testing.T) {
	// A sync pass fires several tab fetches at the same host at once;
	// the burst must let them all through without pacing.
	l := New(1, 3)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("docs.google.com"), "burst request %d", i)
	}
	assert.False(t, l.Allow("docs.google.com"), "burst exhausted")
}

func TestHostsPacedIndependently(t *testing.T) {
	l := New(1, 1)
	defer l.Stop()

	require.True(t, l.Allow("docs.google.com"))
	assert.False(t, l.Allow("docs.google.com"))
	assert.True(t, l.Allow("www.googleapis.com"), "drive host has its own bucket")
}

func TestWaitPacesAfterBurst(t *testing.T) {
	l := New(20, 1)
	defer l.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, l.Wait(ctx, "docs.google.com"))

	// Refill at 20 rps means the second token arrives ~50ms later.
	start := time.Now()
	require.NoError(t, l.Wait(ctx, "docs.google.com"))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWaitHonorsContext(t *testing.T) {
	l := New(0.01, 1)
	defer l.Stop()

	l.Allow("docs.google.com")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "docs.google.com"))
}
