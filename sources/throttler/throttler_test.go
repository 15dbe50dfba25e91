package throttler

import (
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func newTestThrottler() *Throttler {
	// Nothing listens on this port, every redis call fails fast.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})

	config := &configuration.Config{}
	config.Throttler.Limit = time.Second

	return NewThrottler(client, config, tracing.NewConsoleLogger())
}

func TestIsAllowedFailsOpen(t *testing.T) {
	throttler := newTestThrottler()

	if !throttler.IsAllowed("api-key-1") {
		t.Error("IsAllowed() = false on redis outage, want fail-open true")
	}
}

func TestThrottleKey(t *testing.T) {
	if got := throttleKey("tp_abc123"); got != "throttle:tp_abc123" {
		t.Errorf("throttleKey() = %q, want %q", got, "throttle:tp_abc123")
	}
}
