package pacing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelay_Clamp(t *testing.T) {
	require.Equal(t, MinDelay, Delay(""))
	require.Equal(t, MinDelay, Delay("short"))
	require.Equal(t, MaxDelay, Delay(strings.Repeat("x", 500)))
}

func TestDelay_Proportional(t *testing.T) {
	// 30 characters at 15 per second.
	require.Equal(t, 2*time.Second, Delay(strings.Repeat("x", 30)))
	// Counted in characters, not bytes.
	require.Equal(t, 2*time.Second, Delay(strings.Repeat("é", 30)))
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Wait(ctx, "hello")
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), MinDelay)
}

func TestSleep_Completes(t *testing.T) {
	require.NoError(t, sleep(context.Background(), time.Millisecond))
}
