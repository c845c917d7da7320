package http

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsRapidTapBursts(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	// Every tap within the budget lands, even in a tight burst.
	for i := 0; i < requestsPerMinute; i++ {
		if !rl.allow("till-1") {
			t.Fatalf("tap %d rejected within the budget", i+1)
		}
	}
	if rl.allow("till-1") {
		t.Fatal("request beyond the budget allowed")
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < requestsPerMinute; i++ {
		rl.allow("till-1")
	}
	if rl.allow("till-1") {
		t.Fatal("exhausted client still allowed")
	}
	if !rl.allow("till-2") {
		t.Fatal("fresh client blocked by another client's budget")
	}
}

func TestRateLimiterResetsAfterIdleWindow(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	rl.allow("till-1")
	rl.mu.Lock()
	rl.clients["till-1"].requests = requestsPerMinute
	rl.clients["till-1"].lastRequest = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.allow("till-1") {
		t.Fatal("stale window not reset")
	}
}
