package outreach

import (
	"context"
	"fmt"
	"strings"
	"taskprovision/sources/configuration"
	"taskprovision/sources/features"
	"taskprovision/sources/metrics"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/texting/format"
	"taskprovision/sources/tracing"
	"time"

	"go.uber.org/fx"
)

// Dispatcher starts cold outreach sequences for fresh qualified leads and
// delivers the steps that have come due.
type Dispatcher struct {
	log      *tracing.Logger
	config   *configuration.Config
	leads    *repository.LeadsRepository
	outreach *repository.OutreachRepository
	mailer   *Mailer
	features *features.FeatureManager
	metrics  *metrics.MetricsService
}

func NewDispatcher(
	lc fx.Lifecycle,
	log *tracing.Logger,
	config *configuration.Config,
	leads *repository.LeadsRepository,
	outreach *repository.OutreachRepository,
	mailer *Mailer,
	features *features.FeatureManager,
	metrics *metrics.MetricsService,
) *Dispatcher {
	d := &Dispatcher{
		log:      log,
		config:   config,
		leads:    leads,
		outreach: outreach,
		mailer:   mailer,
		features: features,
		metrics:  metrics,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go d.start()
			return nil
		},
	})

	return d
}

func (x *Dispatcher) start() {
	ticker := time.NewTicker(x.config.Outreach.DispatchInterval)
	defer ticker.Stop()

	for range ticker.C {
		if !x.features.IsEnabledDefault(features.FeatureEmailSequences, false) {
			continue
		}

		x.StartSequences(x.log)
		x.DispatchDue(x.log)
	}
}

// StartSequences enrolls qualified leads that have an email address and no
// outreach history yet.
func (x *Dispatcher) StartSequences(log *tracing.Logger) {
	defer tracing.ProfilePoint(log, "Sequence enrollment completed", "outreach.dispatcher.start.sequences")()

	leads, err := x.leads.GetLeadsWithoutOutreach(log, x.config.Outreach.MinLeadScore, x.config.Outreach.OutreachBatch)
	if err != nil {
		log.E("Failed to load leads for enrollment", tracing.InnerError, err)
		return
	}

	for _, lead := range leads {
		if _, err := x.outreach.CreateOutreachStep(log, lead.ID, SequenceColdOutreach, 0, time.Now()); err != nil {
			log.E("Failed to enroll lead", tracing.LeadOwner, lead.Owner, tracing.InnerError, err)
			continue
		}
		log.I("Lead enrolled in sequence", tracing.LeadOwner, lead.Owner, tracing.SequenceKey, SequenceColdOutreach)
	}
}

// DispatchDue sends every unsent step whose time has come and schedules the
// follow-up step.
func (x *Dispatcher) DispatchDue(log *tracing.Logger) {
	defer tracing.ProfilePoint(log, "Due step dispatch completed", "outreach.dispatcher.dispatch.due")()

	steps, err := x.outreach.GetDueOutreachSteps(log, time.Now(), x.config.Outreach.OutreachBatch)
	if err != nil {
		log.E("Failed to load due outreach steps", tracing.InnerError, err)
		return
	}

	for _, step := range steps {
		if step.Lead.Email == nil {
			continue
		}

		subject, body, err := RenderStep(step.SequenceKey, step.Step, templateDataFor(&step.Lead, x.config.SMTP.FromName))
		if err != nil {
			log.E("Failed to render outreach step", tracing.SequenceKey, step.SequenceKey, tracing.SequenceStep, step.Step, tracing.InnerError, err)
			continue
		}

		if err := x.mailer.Send(log, platform.StringValue(step.Lead.Email, ""), subject, body); err != nil {
			x.metrics.RecordEmailSent(step.SequenceKey, "failed")
			continue
		}

		sentAt := time.Now()
		if err := x.outreach.MarkOutreachStepSent(log, step.ID, sentAt); err != nil {
			log.E("Failed to mark step sent", tracing.InnerError, err)
		}
		x.metrics.RecordEmailSent(step.SequenceKey, "sent")

		x.scheduleNext(log, step, sentAt)
	}
}

func (x *Dispatcher) scheduleNext(log *tracing.Logger, step *entities.OutreachStep, sentAt time.Time) {
	sequence, ok := Sequence(step.SequenceKey)
	if !ok || step.Step+1 >= len(sequence) {
		return
	}

	gap := sequence[step.Step+1].Delay - sequence[step.Step].Delay
	if _, err := x.outreach.CreateOutreachStep(log, step.LeadID, step.SequenceKey, step.Step+1, sentAt.Add(gap)); err != nil {
		log.E("Failed to schedule next step", tracing.SequenceKey, step.SequenceKey, tracing.InnerError, err)
	}
}

func templateDataFor(lead *entities.Lead, senderName string) TemplateData {
	languages := []string(lead.Languages)

	primary := "Python"
	if len(languages) > 0 {
		primary = languages[0]
	}

	shown := languages
	if len(shown) > 2 {
		shown = shown[:2]
	}

	return TemplateData{
		Name:            lead.Owner,
		Repo:            lead.Repo,
		GithubURL:       fmt.Sprintf("%s/%s", lead.Owner, lead.Repo),
		Languages:       strings.Join(shown, ", "),
		PrimaryLanguage: primary,
		IssueCount:      lead.OpenIssues,
		Contributors:    lead.ContributorsCount,
		LastActive:      format.Ageify(lead.LastActivity),
		SenderName:      senderName,
	}
}
