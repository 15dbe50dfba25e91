package repository

import "go.uber.org/fx"

var Module = fx.Module("repository",
	fx.Provide(
		NewAccountsRepository,
		NewProjectsRepository,
		NewTasksRepository,
		NewGenerationsRepository,
		NewLeadsRepository,
		NewOutreachRepository,
		NewPlansRepository,
		NewSubscriptionsRepository,
		NewUsageRepository,
		NewHealthRepository,
	),
)
