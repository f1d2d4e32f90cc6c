// Package pacing computes how long a client should show a typing indicator
// before displaying a bot reply.
package pacing

import (
	"context"
	"time"
	"unicode/utf8"
)

const (
	CharsPerSecond = 15
	MinDelay       = 1000 * time.Millisecond
	MaxDelay       = 3500 * time.Millisecond
)

// Delay returns the typing delay for text: its length at CharsPerSecond,
// clamped to [MinDelay, MaxDelay].
func Delay(text string) time.Duration {
	d := time.Duration(utf8.RuneCountInString(text)) * time.Second / CharsPerSecond
	if d < MinDelay {
		return MinDelay
	}
	if d > MaxDelay {
		return MaxDelay
	}
	return d
}

// Wait blocks for Delay(text). It returns ctx.Err() if the context is done
// first, which callers treat as the reply being abandoned.
func Wait(ctx context.Context, text string) error {
	return sleep(ctx, Delay(text))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
