package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"
	"time"
)

var lastPagePattern = regexp.MustCompile(`page=(\d+)>; rel="last"`)

type repoSearchResponse struct {
	Items []RepoData `json:"items"`
}

type RepoData struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
		Type  string `json:"type"`
	} `json:"owner"`
	Description     string    `json:"description"`
	StargazersCount int       `json:"stargazers_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics"`
}

type UserData struct {
	Email    *string `json:"email"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
}

// GitHubClient mines public repository data, respecting the API rate limit
// budget. When the remaining quota drops to 100 requests it sleeps until the
// reported reset time. The quota fields are shared between the mining ticker
// and on-demand requests, the mutex keeps them consistent.
type GitHubClient struct {
	client *http.Client
	config *configuration.Config

	mu        sync.Mutex
	remaining int
	reset     int64
}

func NewGitHubClient(client *http.Client, config *configuration.Config) *GitHubClient {
	return &GitHubClient{client: client, config: config, remaining: 5000}
}

func (x *GitHubClient) SearchRepositories(ctx context.Context, log *tracing.Logger, query string, perPage int) ([]RepoData, error) {
	x.waitForRateLimit(log)

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "updated")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(perPage))

	var response repoSearchResponse
	if err := x.get(ctx, log, "/search/repositories?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	return response.Items, nil
}

func (x *GitHubClient) GetUserDetails(ctx context.Context, log *tracing.Logger, username string) (*UserData, error) {
	x.waitForRateLimit(log)

	var user UserData
	if err := x.get(ctx, log, "/users/"+url.PathEscape(username), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (x *GitHubClient) GetRepositoryLanguages(ctx context.Context, log *tracing.Logger, owner string, repo string) ([]string, error) {
	x.waitForRateLimit(log)

	byBytes := map[string]int64{}
	if err := x.get(ctx, log, fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(repo)), &byBytes); err != nil {
		return nil, err
	}

	languages := make([]string, 0, len(byBytes))
	for language := range byBytes {
		languages = append(languages, language)
	}

	return languages, nil
}

// GetContributorsCount reads the count off the Link header of a one-per-page
// listing, falling back to counting the returned page.
func (x *GitHubClient) GetContributorsCount(ctx context.Context, log *tracing.Logger, owner string, repo string) (int, error) {
	x.waitForRateLimit(log)

	endpoint := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=1&anon=false", x.config.GitHub.BaseURL, url.PathEscape(owner), url.PathEscape(repo))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	x.authorize(request)

	response, err := x.client.Do(request)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()
	x.updateRateLimit(response)

	if response.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("github contributors request failed: %s", response.Status)
	}

	if count, ok := ParseLastPage(response.Header.Get("Link")); ok {
		return count, nil
	}

	var contributors []json.RawMessage
	if err := json.NewDecoder(response.Body).Decode(&contributors); err != nil {
		return 0, err
	}

	return len(contributors), nil
}

// ParseLastPage extracts the final page number from a GitHub Link header.
func ParseLastPage(linkHeader string) (int, bool) {
	match := lastPagePattern.FindStringSubmatch(linkHeader)
	if match == nil {
		return 0, false
	}

	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return count, true
}

func (x *GitHubClient) get(ctx context.Context, log *tracing.Logger, path string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, x.config.GitHub.BaseURL+path, nil)
	if err != nil {
		return err
	}
	x.authorize(request)

	response, err := x.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	x.updateRateLimit(response)

	if response.StatusCode == http.StatusForbidden {
		remaining, _ := x.rateLimit()
		log.E("GitHub rate limit exceeded", tracing.RateLimitRemain, remaining)
		return fmt.Errorf("github rate limit exceeded")
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("github request failed: %s", response.Status)
	}

	return json.NewDecoder(response.Body).Decode(out)
}

func (x *GitHubClient) authorize(request *http.Request) {
	if x.config.GitHub.Token != "" {
		request.Header.Set("Authorization", "token "+x.config.GitHub.Token)
	}
	request.Header.Set("Accept", "application/vnd.github.v3+json")
	request.Header.Set("User-Agent", "TaskProvision-LeadMiner/1.0")
}

func (x *GitHubClient) updateRateLimit(response *http.Response) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if remaining := response.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if value, err := strconv.Atoi(remaining); err == nil {
			x.remaining = value
		}
	}
	if reset := response.Header.Get("X-RateLimit-Reset"); reset != "" {
		if value, err := strconv.ParseInt(reset, 10, 64); err == nil {
			x.reset = value
		}
	}
}

func (x *GitHubClient) rateLimit() (int, int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.remaining, x.reset
}

func (x *GitHubClient) waitForRateLimit(log *tracing.Logger) {
	remaining, reset := x.rateLimit()
	if remaining > 100 || reset == 0 {
		return
	}

	wait := time.Until(time.Unix(reset, 0))
	if wait <= 0 {
		return
	}

	log.W("GitHub rate limit low, waiting for reset", tracing.RateLimitRemain, remaining, "wait", wait.String())
	time.Sleep(wait + time.Second)
}
