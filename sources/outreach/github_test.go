package outreach

import (
	"net/http"
	"strconv"
	"sync"
	"testing"
)

func TestParseLastPage(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
		ok     bool
	}{
		{
			name:   "paged listing",
			header: `<https://api.github.com/repos/o/r/contributors?per_page=1&page=2>; rel="next", <https://api.github.com/repos/o/r/contributors?per_page=1&page=42>; rel="last"`,
			want:   42,
			ok:     true,
		},
		{
			name:   "single page",
			header: "",
			want:   0,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLastPage(tt.header)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLastPage() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRateLimitConcurrentUpdates(t *testing.T) {
	client := &GitHubClient{remaining: 5000}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			header := http.Header{}
			header.Set("X-RateLimit-Remaining", strconv.Itoa(4000+i))
			header.Set("X-RateLimit-Reset", "1700000000")
			client.updateRateLimit(&http.Response{Header: header})
		}(i)
		go func() {
			defer wg.Done()
			remaining, _ := client.rateLimit()
			if remaining < 0 {
				t.Error("remaining went negative")
			}
		}()
	}
	wg.Wait()

	remaining, reset := client.rateLimit()
	if remaining < 4000 || remaining > 4049 {
		t.Errorf("remaining = %d, want a value written by an updater", remaining)
	}
	if reset != 1700000000 {
		t.Errorf("reset = %d, want 1700000000", reset)
	}
}
