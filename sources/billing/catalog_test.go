package billing

import (
	"taskprovision/sources/platform"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultPlans(t *testing.T) {
	plans := DefaultPlans()
	if len(plans) != 3 {
		t.Fatalf("catalog has %d plans, want 3", len(plans))
	}

	byKey := map[string]int{}
	for i, plan := range plans {
		byKey[plan.Key] = i
	}

	starter := plans[byKey[platform.PlanStarter]]
	if !starter.MonthlyPrice.Equal(decimal.NewFromInt(29)) {
		t.Errorf("starter price = %s, want 29", starter.MonthlyPrice)
	}
	if starter.ProjectLimit != 3 {
		t.Errorf("starter project limit = %d, want 3", starter.ProjectLimit)
	}

	professional := plans[byKey[platform.PlanProfessional]]
	if !professional.MonthlyPrice.Equal(decimal.NewFromInt(79)) {
		t.Errorf("professional price = %s, want 79", professional.MonthlyPrice)
	}
	if professional.ProjectLimit >= 0 {
		t.Errorf("professional project limit = %d, want unlimited", professional.ProjectLimit)
	}

	enterprise := plans[byKey[platform.PlanEnterprise]]
	if !enterprise.MonthlyPrice.Equal(decimal.NewFromInt(199)) {
		t.Errorf("enterprise price = %s, want 199", enterprise.MonthlyPrice)
	}
}

func TestNextPlan(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{platform.PlanStarter, platform.PlanProfessional},
		{platform.PlanProfessional, platform.PlanEnterprise},
		{platform.PlanEnterprise, ""},
		{"bogus", ""},
	}

	for _, tt := range tests {
		if got := nextPlan(tt.current); got != tt.want {
			t.Errorf("nextPlan(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestPriceIDFor(t *testing.T) {
	if got := priceIDFor(platform.PlanProfessional); got != "price_professional" {
		t.Errorf("priceIDFor() = %q, want price_professional", got)
	}
}
