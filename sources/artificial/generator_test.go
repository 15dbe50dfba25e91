package artificial

import (
	"taskprovision/sources/configuration"
	"testing"
)

func TestCloudFallbackNames(t *testing.T) {
	both := &configuration.Config{}
	both.AI.OpenAIToken = "sk-openai"
	both.AI.OpenRouterToken = "sk-openrouter"

	onlyOpenRouter := &configuration.Config{}
	onlyOpenRouter.AI.OpenRouterToken = "sk-openrouter"

	none := &configuration.Config{}

	tests := []struct {
		name   string
		config *configuration.Config
		failed string
		want   []string
	}{
		{
			name:   "local failure tries every cloud provider",
			config: both,
			failed: "ollama",
			want:   []string{"openai", "openrouter"},
		},
		{
			name:   "failed cloud provider is skipped",
			config: both,
			failed: "openai",
			want:   []string{"openrouter"},
		},
		{
			name:   "unconfigured providers are skipped",
			config: onlyOpenRouter,
			failed: "ollama",
			want:   []string{"openrouter"},
		},
		{
			name:   "no credentials means no fallback",
			config: none,
			failed: "ollama",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cloudFallbackNames(tt.config, tt.failed)
			if len(got) != len(tt.want) {
				t.Fatalf("cloudFallbackNames() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("cloudFallbackNames()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
