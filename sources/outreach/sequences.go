package outreach

import (
	"errors"
	"strings"
	"text/template"
	"time"
)

const (
	SequenceColdOutreach    = "cold_outreach"
	SequenceTrialOnboarding = "trial_onboarding"
)

var ErrUnknownSequence = errors.New("unknown email sequence")

type EmailStep struct {
	Name    string
	Subject string
	Body    string
	Delay   time.Duration
}

// TemplateData is the personalization surface available to every template.
type TemplateData struct {
	Name            string
	Repo            string
	GithubURL       string
	Languages       string
	PrimaryLanguage string
	IssueCount      int
	Contributors    int
	LastActive      string
	SenderName      string
}

var sequences = map[string][]EmailStep{
	SequenceColdOutreach: {
		{
			Name:    "initial_contact",
			Subject: "Noticed your {{.Repo}} project - quick automation tip",
			Delay:   0,
			Body: `Hi {{.Name}},

I came across your {{.Repo}} project on GitHub - really impressive work with {{.Languages}}!

I noticed you have {{.IssueCount}} open issues. Many developers with similar projects save 4-6 hours/week using AI-powered development automation.

Quick question: what's your biggest development bottleneck right now?

I'd love to show you a free repository health check that might help:
https://taskprovision.com/tools/repo-health?repo={{.GithubURL}}

Worth a 2-minute look?

Best,
{{.SenderName}}`,
		},
		{
			Name:    "value_proposition",
			Subject: "Re: {{.Repo}} - 15min demo that could save hours",
			Delay:   3 * 24 * time.Hour,
			Body: `Hi {{.Name}},

Quick follow-up on {{.Repo}} - I wanted to share something specific that might help.

I saw your project uses {{.PrimaryLanguage}}. Here's what similar teams achieved with TaskProvision:

- 60% fewer bugs in production
- Automated test generation saved 8 hours/week
- Code quality score improved from 72% to 94%

Would a 15-minute demo showing these automation tools be valuable?

Best,
{{.SenderName}}`,
		},
		{
			Name:    "social_proof",
			Subject: "How a team like yours saved 40% development time",
			Delay:   7 * 24 * time.Hour,
			Body: `Hi {{.Name}},

I wanted to share a quick success story that might resonate with your {{.Repo}} project.

A team with a similar setup ({{.Languages}} codebase, {{.Contributors}} contributors, growing technical debt) achieved after adopting TaskProvision:

- 40% faster development cycles
- 90% reduction in critical bugs
- Automated code reviews saved 12 hours/week

Want to see if we can achieve similar results with {{.Repo}}?

Book a 15-min demo: https://cal.com/taskprovision/demo

Best,
{{.SenderName}}`,
		},
		{
			Name:    "final_value",
			Subject: "Last check-in: {{.Repo}} automation opportunity",
			Delay:   14 * 24 * time.Hour,
			Body: `Hi {{.Name}},

This is my last email about TaskProvision (I promise!).

I'll be honest - I'm reaching out because {{.Repo}} seems like exactly the type of project that benefits most from AI automation:

- {{.PrimaryLanguage}} development (our sweet spot)
- {{.Contributors}} contributors (perfect team size)
- Active development (last activity {{.LastActive}})

Final offer: a 30-minute consultation where I analyze {{.Repo}} live and give you the report regardless. No pitch, just developer-to-developer insights.

Interested? Just reply with "Yes".

Cheers,
{{.SenderName}}`,
		},
	},
	SequenceTrialOnboarding: {
		{
			Name:    "welcome",
			Subject: "Welcome to TaskProvision - your setup guide",
			Delay:   0,
			Body: `Hi {{.Name}},

Welcome to TaskProvision!

Quick start (5 minutes):
1. Connect your GitHub: https://app.taskprovision.com/connect
2. Run your first analysis
3. Review the suggested improvements

Need help? Just reply to this email.

Happy automating,
{{.SenderName}}`,
		},
		{
			Name:    "progress_check",
			Subject: "How's your TaskProvision experience going?",
			Delay:   3 * 24 * time.Hour,
			Body: `Hi {{.Name}},

Quick check-in on your TaskProvision trial!

Typical results by day 7:
- 3-5 code issues automatically fixed
- 1-2 test suites generated
- 15-30% improvement in code quality score

How are you finding it so far? Any questions?

Keep up the great work,
{{.SenderName}}`,
		},
		{
			Name:    "upgrade_prompt",
			Subject: "Ready to supercharge {{.Repo}}?",
			Delay:   11 * 24 * time.Hour,
			Body: `Hi {{.Name}},

Your trial ends in 3 days, and I wanted to make sure you're getting maximum value.

To keep the momentum, consider the Professional plan ($79/month):
- Unlimited repositories
- Advanced AI suggestions
- Priority support

Special offer: use code WELCOME30 for 30% off the first 3 months.

Upgrade: https://app.taskprovision.com/upgrade?code=WELCOME30

{{.SenderName}}`,
		},
	},
}

// Sequence returns the steps of a sequence in send order.
func Sequence(key string) ([]EmailStep, bool) {
	steps, ok := sequences[key]
	return steps, ok
}

// RenderStep personalizes the subject and body of one sequence step.
func RenderStep(sequenceKey string, step int, data TemplateData) (string, string, error) {
	steps, ok := sequences[sequenceKey]
	if !ok || step < 0 || step >= len(steps) {
		return "", "", ErrUnknownSequence
	}

	subject, err := render(steps[step].Subject, data)
	if err != nil {
		return "", "", err
	}

	body, err := render(steps[step].Body, data)
	if err != nil {
		return "", "", err
	}

	return subject, body, nil
}

func render(text string, data TemplateData) (string, error) {
	tmpl, err := template.New("email").Parse(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}
