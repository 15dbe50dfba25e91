package throttler

import (
	"context"
	"fmt"
	"taskprovision/sources/configuration"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttler limits how often a single API key may hit the service. Redis
// failures fail open so a cache outage never blocks traffic.
type Throttler struct {
	client *redis.Client
	config *configuration.Config
	log    *tracing.Logger
	ctx    context.Context
}

func NewThrottler(client *redis.Client, config *configuration.Config, log *tracing.Logger) *Throttler {
	return &Throttler{client: client, config: config, log: log, ctx: context.Background()}
}

func (x *Throttler) IsAllowed(callerKey string) bool {
	ctx, cancel := platform.ContextTimeout(x.ctx)
	defer cancel()

	success, err := x.client.SetNX(ctx, throttleKey(callerKey), time.Now().Unix(), x.config.Throttler.Limit).Result()
	if err != nil {
		x.log.E("Error setting throttle key", tracing.InnerError, err)
		return true
	}

	return success
}

func throttleKey(callerKey string) string {
	return fmt.Sprintf("throttle:%s", callerKey)
}
