package collector

import (
	"context"
	"taskprovision/sources/metrics"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"
	"time"

	"go.uber.org/fx"
)

type StatsCollector struct {
	log         *tracing.Logger
	metrics     *metrics.MetricsService
	accounts    *repository.AccountsRepository
	tasks       *repository.TasksRepository
	generations *repository.GenerationsRepository
	leads       *repository.LeadsRepository
	outreach    *repository.OutreachRepository
}

func NewStatsCollector(
	lc fx.Lifecycle,
	log *tracing.Logger,
	metrics *metrics.MetricsService,
	accounts *repository.AccountsRepository,
	tasks *repository.TasksRepository,
	generations *repository.GenerationsRepository,
	leads *repository.LeadsRepository,
	outreach *repository.OutreachRepository,
) *StatsCollector {
	s := &StatsCollector{
		log:         log,
		metrics:     metrics,
		accounts:    accounts,
		tasks:       tasks,
		generations: generations,
		leads:       leads,
		outreach:    outreach,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.start()
			return nil
		},
	})

	return s
}

func (s *StatsCollector) start() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	s.collectStats()

	for range ticker.C {
		s.collectStats()
	}
}

func (s *StatsCollector) collectStats() {
	if count, err := s.accounts.GetTotalAccountsCount(s.log); err == nil {
		s.metrics.SetTotalAccounts(float64(count))
	} else {
		s.log.E("Failed to collect total accounts stats", tracing.InnerError, err)
	}

	if count, err := s.generations.GetTotalGenerationsCount(s.log); err == nil {
		s.metrics.SetTotalGenerations(float64(count))
	} else {
		s.log.E("Failed to collect total generations stats", tracing.InnerError, err)
	}

	if average, err := s.generations.GetAverageQualityScore(s.log); err == nil {
		s.metrics.SetAverageQuality(average)
	} else {
		s.log.E("Failed to collect average quality stats", tracing.InnerError, err)
	}

	if count, err := s.leads.GetTotalLeadsCount(s.log); err == nil {
		s.metrics.SetTotalLeads(float64(count))
	} else {
		s.log.E("Failed to collect total leads stats", tracing.InnerError, err)
	}

	if counts, err := s.tasks.GetTasksCountByStatus(s.log); err == nil {
		for status, count := range counts {
			s.metrics.SetTasksByStatus(status, float64(count))
		}
	} else {
		s.log.E("Failed to collect tasks by status stats", tracing.InnerError, err)
	}

	if count, err := s.outreach.GetSentStepsCountSince(s.log, time.Now().Add(-24*time.Hour)); err == nil {
		s.metrics.SetEmailsLastDay(float64(count))
	} else {
		s.log.E("Failed to collect emails last day stats", tracing.InnerError, err)
	}
}
