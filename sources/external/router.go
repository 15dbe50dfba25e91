package external

import (
	"net/http"
	"strconv"
	"taskprovision/sources/artificial"
	"taskprovision/sources/balancer"
	"taskprovision/sources/billing"
	"taskprovision/sources/configuration"
	"taskprovision/sources/metrics"
	"taskprovision/sources/outreach"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/quality"
	"taskprovision/sources/repository"
	"taskprovision/sources/tasks"
	"taskprovision/sources/throttler"
	"taskprovision/sources/tracing"
	"time"

	"go.uber.org/fx"
)

// Version is stamped at build time.
var Version = "1.0.0"

// Router binds the public API surface to the domain services.
type Router struct {
	log           *tracing.Logger
	config        *configuration.Config
	issuer        *TokenIssuer
	throttler     *throttler.Throttler
	metrics       *metrics.MetricsService
	accounts      *repository.AccountsRepository
	subscriptions *repository.SubscriptionsRepository
	plans         *repository.PlansRepository
	leads         *repository.LeadsRepository
	projects      *repository.ProjectsRepository
	generations   *repository.GenerationsRepository
	health        *repository.HealthRepository
	tasks         *tasks.Manager
	generator     *artificial.Generator
	analyzer      *artificial.Analyzer
	guard         *quality.Guard
	balancer      *balancer.AIBalancer
	billing       *billing.BillingService
	upsell        *billing.UpsellAdvisor
	miner         *outreach.Miner
	startedAt     time.Time
}

type RouterParams struct {
	fx.In

	Log           *tracing.Logger
	Config        *configuration.Config
	Issuer        *TokenIssuer
	Throttler     *throttler.Throttler
	Metrics       *metrics.MetricsService
	Accounts      *repository.AccountsRepository
	Subscriptions *repository.SubscriptionsRepository
	Plans         *repository.PlansRepository
	Leads         *repository.LeadsRepository
	Projects      *repository.ProjectsRepository
	Generations   *repository.GenerationsRepository
	Health        *repository.HealthRepository
	Tasks         *tasks.Manager
	Generator     *artificial.Generator
	Analyzer      *artificial.Analyzer
	Guard         *quality.Guard
	Balancer      *balancer.AIBalancer
	Billing       *billing.BillingService
	Upsell        *billing.UpsellAdvisor
	Miner         *outreach.Miner
}

func NewRouter(p RouterParams) *Router {
	return &Router{
		log:           p.Log,
		config:        p.Config,
		issuer:        p.Issuer,
		throttler:     p.Throttler,
		metrics:       p.Metrics,
		accounts:      p.Accounts,
		subscriptions: p.Subscriptions,
		plans:         p.Plans,
		leads:         p.Leads,
		projects:      p.Projects,
		generations:   p.Generations,
		health:        p.Health,
		tasks:         p.Tasks,
		generator:     p.Generator,
		analyzer:      p.Analyzer,
		guard:         p.Guard,
		balancer:      p.Balancer,
		billing:       p.Billing,
		upsell:        p.Upsell,
		miner:         p.Miner,
		startedAt:     time.Now(),
	}
}

func (x *Router) Handler() http.Handler {
	return platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
		m.HandleFunc("GET /health", x.handleHealth)
		m.HandleFunc("GET /status", x.instrument("status", x.handleStatus))
		m.HandleFunc("GET /api/test", x.instrument("test", x.handleTest))

		m.HandleFunc("POST /api/auth/register", x.instrument("auth.register", x.handleRegister))
		m.HandleFunc("POST /api/auth/token", x.instrument("auth.token", x.handleToken))

		m.HandleFunc("POST /api/projects", x.protected("projects.create", x.handleCreateProject))
		m.HandleFunc("GET /api/projects", x.protected("projects.list", x.handleListProjects))
		m.HandleFunc("GET /api/projects/{id}", x.protected("projects.get", x.handleGetProject))

		m.HandleFunc("POST /api/tasks", x.protected("tasks.create", x.handleCreateTask))
		m.HandleFunc("GET /api/tasks", x.protected("tasks.list", x.handleListTasks))
		m.HandleFunc("GET /api/tasks/blocked", x.protected("tasks.blocked", x.handleBlockedTasks))
		m.HandleFunc("GET /api/tasks/{id}", x.protected("tasks.get", x.handleGetTask))
		m.HandleFunc("PATCH /api/tasks/{id}", x.protected("tasks.update", x.handleUpdateTask))
		m.HandleFunc("DELETE /api/tasks/{id}", x.protected("tasks.delete", x.handleDeleteTask))
		m.HandleFunc("POST /api/tasks/{id}/dependencies", x.protected("tasks.dependencies.add", x.handleAddDependency))
		m.HandleFunc("GET /api/tasks/{id}/dependencies", x.protected("tasks.dependencies.list", x.handleListDependencies))
		m.HandleFunc("POST /api/tasks/{id}/estimate", x.protected("tasks.estimate", x.handleEstimateComplexity))

		m.HandleFunc("POST /api/generation/code", x.protected("generation.code", x.handleGenerateCode))
		m.HandleFunc("POST /api/generation/refactor", x.protected("generation.refactor", x.handleRefactorCode))
		m.HandleFunc("POST /api/analysis/code", x.protected("analysis.code", x.handleAnalyzeCode))
		m.HandleFunc("POST /api/analysis/task-complexity", x.protected("analysis.complexity", x.handleAnalyzeComplexity))
		m.HandleFunc("POST /api/quality/check", x.protected("quality.check", x.handleQualityCheck))

		m.HandleFunc("GET /api/leads", x.protected("leads.list", x.handleListLeads))
		m.HandleFunc("POST /api/leads/mine", x.protected("leads.mine", x.handleMineLeads))

		m.HandleFunc("GET /api/billing/plans", x.instrument("billing.plans", x.handleListPlans))
		m.HandleFunc("POST /api/billing/subscriptions", x.protected("billing.subscribe", x.handleSubscribe))
		m.HandleFunc("GET /api/billing/subscriptions", x.protected("billing.subscription", x.handleGetSubscription))
		m.HandleFunc("GET /api/billing/upsell", x.protected("billing.upsell", x.handleUpsell))
		m.HandleFunc("POST /api/billing/webhook", x.instrument("billing.webhook", x.handleStripeWebhook))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (x *Router) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(recorder, r)

		x.metrics.RecordRequestHandled(route, strconv.Itoa(recorder.status))
		x.metrics.RecordRequestDuration(route, time.Since(start))
		x.log.I("Request handled", tracing.HttpMethod, r.Method, tracing.HttpPath, r.URL.Path, tracing.HttpStatus, recorder.status)
	}
}

type accountHandler func(http.ResponseWriter, *http.Request, *entities.Account)

// protected authenticates the caller and applies per-key throttling before
// the handler runs.
func (x *Router) protected(route string, next accountHandler) http.HandlerFunc {
	return x.instrument(route, func(w http.ResponseWriter, r *http.Request) {
		account, err := x.authenticate(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, apiError{Error: err.Error()})
			return
		}

		if !x.throttler.IsAllowed(account.APIKey) {
			x.metrics.RecordRequestThrottled()
			writeJSON(w, http.StatusTooManyRequests, apiError{Error: "too many requests"})
			return
		}

		next(w, r, account)
	})
}
