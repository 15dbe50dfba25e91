package outreach

import (
	"context"
	"fmt"
	"taskprovision/sources/configuration"
	"taskprovision/sources/features"
	"taskprovision/sources/metrics"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/texting/format"
	"taskprovision/sources/tracing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Miner periodically searches GitHub for repositories matching the target
// customer profile and stores qualifying ones as leads.
type Miner struct {
	log      *tracing.Logger
	config   *configuration.Config
	github   *GitHubClient
	leads    *repository.LeadsRepository
	features *features.FeatureManager
	metrics  *metrics.MetricsService
}

func NewMiner(
	lc fx.Lifecycle,
	log *tracing.Logger,
	config *configuration.Config,
	github *GitHubClient,
	leads *repository.LeadsRepository,
	features *features.FeatureManager,
	metrics *metrics.MetricsService,
) *Miner {
	m := &Miner{
		log:      log,
		config:   config,
		github:   github,
		leads:    leads,
		features: features,
		metrics:  metrics,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go m.start()
			return nil
		},
	})

	return m
}

func (x *Miner) start() {
	ticker := time.NewTicker(x.config.GitHub.MiningInterval)
	defer ticker.Stop()

	for range ticker.C {
		if !x.features.IsEnabledDefault(features.FeatureLeadMining, false) {
			continue
		}
		if _, err := x.MineLeads(x.log, x.config.GitHub.MaxLeadsPerRun); err != nil {
			x.log.E("Lead mining run failed", tracing.InnerError, err)
		}
	}
}

// MineLeads runs the search queries and returns the stored qualifying leads.
func (x *Miner) MineLeads(log *tracing.Logger, maxLeads int) ([]*entities.Lead, error) {
	defer tracing.ProfilePoint(log, "Lead mining completed", "outreach.miner.mine")()

	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 10*time.Minute)
	defer cancel()

	var mined []*entities.Lead

	for _, query := range x.searchQueries() {
		if len(mined) >= maxLeads {
			break
		}

		log.I("Searching repositories", "query", query)
		repos, err := x.github.SearchRepositories(ctx, log, query, 100)
		if err != nil {
			log.E("Repository search failed", tracing.InnerError, err)
			continue
		}

		for _, repo := range repos {
			if len(mined) >= maxLeads {
				break
			}

			lead, err := x.processRepository(ctx, log, repo)
			if err != nil {
				log.E("Failed to process repository", tracing.LeadRepo, repo.Name, tracing.InnerError, err)
				continue
			}
			if lead == nil {
				continue
			}

			stored, err := x.leads.UpsertLead(log, lead)
			if err != nil {
				continue
			}

			mined = append(mined, stored)
			x.metrics.RecordLeadMined(stored.Priority)
		}

		// Breathe between search queries.
		time.Sleep(time.Second)
	}

	log.I("Lead mining run finished", "mined", len(mined))
	return mined, nil
}

// processRepository enriches a search hit and applies the target criteria.
// A nil lead means the repository did not qualify.
func (x *Miner) processRepository(ctx context.Context, log *tracing.Logger, repo RepoData) (*entities.Lead, error) {
	criteria := x.config.GitHub

	if repo.StargazersCount < criteria.MinStars || repo.StargazersCount > criteria.MaxStars {
		return nil, nil
	}

	contributors, err := x.github.GetContributorsCount(ctx, log, repo.Owner.Login, repo.Name)
	if err != nil {
		return nil, err
	}
	if contributors < criteria.MinContributors || contributors > criteria.MaxContributors {
		return nil, nil
	}

	languages, err := x.github.GetRepositoryLanguages(ctx, log, repo.Owner.Login, repo.Name)
	if err != nil {
		return nil, err
	}
	if !hasLanguageOverlap(languages, criteria.TargetLanguages) {
		return nil, nil
	}

	user, err := x.github.GetUserDetails(ctx, log, repo.Owner.Login)
	if err != nil {
		log.W("Failed to get owner details", tracing.LeadOwner, repo.Owner.Login, tracing.InnerError, err)
		user = &UserData{}
	}

	lead := &entities.Lead{
		Owner:             repo.Owner.Login,
		OwnerType:         repo.Owner.Type,
		Repo:              repo.Name,
		Email:             user.Email,
		Company:           user.Company,
		Location:          user.Location,
		Languages:         languages,
		Stars:             repo.StargazersCount,
		OpenIssues:        repo.OpenIssuesCount,
		ContributorsCount: contributors,
		LastActivity:      repo.UpdatedAt,
		AIRelated:         CheckAIRelevance(repo.Name, repo.Description, repo.Topics),
	}

	score := CalculateLeadScore(lead)
	if score < MinQualityScore {
		return nil, nil
	}

	lead.Score = decimal.NewFromFloat(score)
	lead.Priority = PriorityFor(score)

	log.I("Found lead", tracing.LeadOwner, lead.Owner, tracing.LeadRepo, lead.Repo, tracing.LeadScore, format.Decimalify(lead.Score), "pain_points", DerivePainPoints(lead))
	return lead, nil
}

func (x *Miner) searchQueries() []string {
	criteria := x.config.GitHub
	starsRange := fmt.Sprintf("stars:%d..%d", criteria.MinStars, criteria.MaxStars)
	pushedAfter := time.Now().AddDate(0, 0, -criteria.UpdatedSinceDays).Format("2006-01-02")

	queries := []string{
		fmt.Sprintf("language:Python %s pushed:>%s", starsRange, pushedAfter),
		fmt.Sprintf("language:JavaScript machine learning %s", starsRange),
		fmt.Sprintf("language:Python AI automation %s", starsRange),
		fmt.Sprintf("language:TypeScript api automation %s", starsRange),
		fmt.Sprintf("language:Go microservice automation %s", starsRange),
	}

	return queries
}

func hasLanguageOverlap(repoLanguages []string, targetLanguages []string) bool {
	targets := make(map[string]bool, len(targetLanguages))
	for _, language := range targetLanguages {
		targets[language] = true
	}

	for _, language := range repoLanguages {
		if targets[language] {
			return true
		}
	}

	return false
}
