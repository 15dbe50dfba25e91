package outreach

import (
	"strings"
	"testing"
	"time"
)

func TestSequenceShapes(t *testing.T) {
	cold, ok := Sequence(SequenceColdOutreach)
	if !ok {
		t.Fatal("cold_outreach sequence missing")
	}
	if len(cold) != 4 {
		t.Fatalf("cold_outreach has %d steps, want 4", len(cold))
	}

	wantDelays := []time.Duration{0, 3 * 24 * time.Hour, 7 * 24 * time.Hour, 14 * 24 * time.Hour}
	for i, step := range cold {
		if step.Delay != wantDelays[i] {
			t.Errorf("step %d delay = %v, want %v", i, step.Delay, wantDelays[i])
		}
	}

	onboarding, ok := Sequence(SequenceTrialOnboarding)
	if !ok {
		t.Fatal("trial_onboarding sequence missing")
	}
	if len(onboarding) != 3 {
		t.Fatalf("trial_onboarding has %d steps, want 3", len(onboarding))
	}

	if _, ok := Sequence("nonexistent"); ok {
		t.Error("unknown sequence should not resolve")
	}
}

func TestRenderStep(t *testing.T) {
	data := TemplateData{
		Name:            "octocat",
		Repo:            "hello-world",
		GithubURL:       "octocat/hello-world",
		Languages:       "Python, Go",
		PrimaryLanguage: "Python",
		IssueCount:      7,
		Contributors:    4,
		LastActive:      "3 days ago",
		SenderName:      "TaskProvision Team",
	}

	subject, body, err := RenderStep(SequenceColdOutreach, 0, data)
	if err != nil {
		t.Fatalf("RenderStep() error: %v", err)
	}

	if !strings.Contains(subject, "hello-world") {
		t.Errorf("subject %q does not mention the repo", subject)
	}
	if !strings.Contains(body, "Hi octocat,") {
		t.Errorf("body does not greet the lead:\n%s", body)
	}
	if !strings.Contains(body, "7 open issues") {
		t.Errorf("body does not mention the issue count:\n%s", body)
	}
	if strings.Contains(body, "{{") {
		t.Errorf("body contains unrendered placeholders:\n%s", body)
	}
}

func TestRenderStepOutOfRange(t *testing.T) {
	if _, _, err := RenderStep(SequenceColdOutreach, 99, TemplateData{}); err != ErrUnknownSequence {
		t.Errorf("err = %v, want ErrUnknownSequence", err)
	}
	if _, _, err := RenderStep("bogus", 0, TemplateData{}); err != ErrUnknownSequence {
		t.Errorf("err = %v, want ErrUnknownSequence", err)
	}
}
