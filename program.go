package main

import (
	"context"
	"taskprovision/sources/artificial"
	"taskprovision/sources/balancer"
	"taskprovision/sources/billing"
	"taskprovision/sources/configuration"
	"taskprovision/sources/external"
	"taskprovision/sources/features"
	"taskprovision/sources/metrics"
	"taskprovision/sources/metrics/collector"
	"taskprovision/sources/network"
	"taskprovision/sources/outreach"
	"taskprovision/sources/persistence"
	"taskprovision/sources/quality"
	"taskprovision/sources/repository"
	"taskprovision/sources/tasks"
	"taskprovision/sources/throttler"
	"taskprovision/sources/tracing"

	"go.uber.org/fx"
)

var (
	version   = "1.0.0"
	buildTime = "1970-01-01"
)

func main() {
	fx.New(
		tracing.Module,
		configuration.Module,
		network.Module,
		persistence.Module,
		repository.Module,
		features.Module,
		throttler.Module,
		metrics.Module,
		collector.Module,
		quality.Module,
		balancer.Module,
		artificial.Module,
		tasks.Module,
		outreach.Module,
		billing.Module,
		external.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *tracing.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.I("TaskProvision started successfully", "version", version, "build_time", buildTime)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("TaskProvision stopped", "version", version, "build_time", buildTime)
					return nil
				},
			})
		}),
	).Run()
}
