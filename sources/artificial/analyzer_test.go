package artificial

import "testing"

func TestParseComplexity(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		want      float64
		reasoning string
		wantErr   bool
	}{
		{
			name:      "number with reasoning",
			answer:    "7\nThe task touches several subsystems.",
			want:      7,
			reasoning: "The task touches several subsystems.",
		},
		{
			name:   "number embedded in sentence",
			answer: "Complexity: 4 out of 10",
			want:   4,
		},
		{
			name:      "decimal estimate",
			answer:    "6.5\nModerate",
			want:      6.5,
			reasoning: "Moderate",
		},
		{
			name:   "clamped above ten",
			answer: "15",
			want:   10,
		},
		{
			name:   "clamped below one",
			answer: "0",
			want:   1,
		},
		{
			name:    "no number at all",
			answer:  "hard to say",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reasoning, err := parseComplexity(tt.answer)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("complexity = %v, want %v", got, tt.want)
			}
			if reasoning != tt.reasoning {
				t.Errorf("reasoning = %q, want %q", reasoning, tt.reasoning)
			}
		})
	}
}

func TestOpenAICost(t *testing.T) {
	cost := openAICost("gpt-4o-mini", 1000, 1000)
	if cost.IsZero() {
		t.Fatal("expected nonzero cost for a priced model")
	}

	if !openAICost("unknown-model", 1000, 1000).IsZero() {
		t.Error("expected zero cost for an unpriced model")
	}
}
