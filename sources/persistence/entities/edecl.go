package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type (
	Account struct {
		ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
		Name           *string   `gorm:"size:255" json:"name"`
		GithubUsername *string   `gorm:"size:255" json:"github_username"`
		APIKey         string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
		PlanKey        string    `gorm:"size:50;not null;default:'starter'" json:"plan_key"`
		IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
		CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		Projects      []Project      `gorm:"foreignKey:AccountID;references:ID" json:"projects"`
		Generations   []Generation   `gorm:"foreignKey:AccountID;references:ID" json:"generations"`
		Subscriptions []Subscription `gorm:"foreignKey:AccountID;references:ID" json:"subscriptions"`
	}

	Project struct {
		ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
		Name      string    `gorm:"size:255;not null" json:"name"`
		RepoURL   *string   `gorm:"size:512" json:"repo_url"`
		Language  *string   `gorm:"size:50" json:"language"`
		CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		Account Account `gorm:"foreignKey:AccountID;references:ID" json:"account"`
		Tasks   []Task  `gorm:"foreignKey:ProjectID;references:ID" json:"tasks"`
	}

	Task struct {
		ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		ProjectID   *uuid.UUID     `gorm:"type:uuid;index" json:"project_id"`
		Title       string         `gorm:"size:255;not null" json:"title"`
		Description string         `gorm:"type:text;not null;default:''" json:"description"`
		Status      string         `gorm:"size:50;not null;default:'todo';index" json:"status"`
		Priority    string         `gorm:"size:50;not null;default:'medium'" json:"priority"`
		Assignee    *string        `gorm:"size:255;index" json:"assignee"`
		Tags        pq.StringArray `gorm:"type:text[];not null;default:ARRAY[]::text[]" json:"tags"`
		Complexity  *float64       `json:"complexity"`
		DueDate     *time.Time     `json:"due_date"`
		CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
		UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

		Project      *Project         `gorm:"foreignKey:ProjectID;references:ID" json:"project"`
		Dependencies []TaskDependency `gorm:"foreignKey:TaskID;references:ID" json:"dependencies"`
	}

	TaskDependency struct {
		ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		TaskID      uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
		DependsOnID uuid.UUID `gorm:"type:uuid;not null" json:"depends_on_id"`
		Required    *bool     `gorm:"not null;default:true" json:"required"`
		Description string    `gorm:"type:text;not null;default:''" json:"description"`
		CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		Task      Task `gorm:"foreignKey:TaskID;references:ID" json:"task"`
		DependsOn Task `gorm:"foreignKey:DependsOnID;references:ID" json:"depends_on"`
	}

	Generation struct {
		ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		AccountID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
		Language      string          `gorm:"size:50;not null" json:"language"`
		Description   string          `gorm:"type:text;not null" json:"description"`
		GeneratedCode string          `gorm:"type:text;not null" json:"generated_code"`
		Tests         *string         `gorm:"type:text" json:"tests"`
		Documentation *string         `gorm:"type:text" json:"documentation"`
		QualityScore  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"quality_score"`
		Iterations    int             `gorm:"not null;default:1" json:"iterations"`
		DurationMs    int64           `gorm:"not null;default:0" json:"duration_ms"`
		CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		Account Account `gorm:"foreignKey:AccountID;references:ID" json:"account"`
	}

	Lead struct {
		ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		Owner             string          `gorm:"size:255;not null;uniqueIndex:idx_owner_repo,priority:1" json:"owner"`
		OwnerType         string          `gorm:"size:50;not null" json:"owner_type"`
		Repo              string          `gorm:"size:255;not null;uniqueIndex:idx_owner_repo,priority:2" json:"repo"`
		Email             *string         `gorm:"size:255" json:"email"`
		Company           *string         `gorm:"size:255" json:"company"`
		Location          *string         `gorm:"size:255" json:"location"`
		Languages         pq.StringArray  `gorm:"type:text[];not null;default:ARRAY[]::text[]" json:"languages"`
		Stars             int             `gorm:"not null" json:"stars"`
		OpenIssues        int             `gorm:"not null" json:"open_issues"`
		ContributorsCount int             `gorm:"not null" json:"contributors_count"`
		LastActivity      time.Time       `gorm:"not null" json:"last_activity"`
		AIRelated         bool            `gorm:"not null;default:false" json:"ai_related"`
		Score             decimal.Decimal `gorm:"type:decimal(5,2);not null;index" json:"score"`
		Priority          string          `gorm:"size:20;not null" json:"priority"`
		CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		OutreachSteps []OutreachStep `gorm:"foreignKey:LeadID;references:ID" json:"outreach_steps"`
	}

	OutreachStep struct {
		ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		LeadID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"lead_id"`
		SequenceKey string     `gorm:"size:100;not null" json:"sequence_key"`
		Step        int        `gorm:"not null" json:"step"`
		NextSendAt  time.Time  `gorm:"not null;index" json:"next_send_at"`
		SentAt      *time.Time `json:"sent_at"`
		CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		Lead Lead `gorm:"foreignKey:LeadID;references:ID" json:"lead"`
	}

	Subscription struct {
		ID                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		AccountID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
		StripeCustomerID     string     `gorm:"size:255;not null" json:"stripe_customer_id"`
		StripeSubscriptionID string     `gorm:"size:255;not null;uniqueIndex" json:"stripe_subscription_id"`
		PlanKey              string     `gorm:"size:50;not null" json:"plan_key"`
		Status               string     `gorm:"size:50;not null" json:"status"`
		TrialEndsAt          *time.Time `json:"trial_ends_at"`
		CreatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

		Account Account `gorm:"foreignKey:AccountID;references:ID" json:"account"`
	}

	UsageRecord struct {
		ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
		AccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
		Kind      string          `gorm:"size:50;not null" json:"kind"`
		Model     string          `gorm:"size:100;not null" json:"model"`
		Tokens    int64           `gorm:"not null;default:0" json:"tokens"`
		Cost      decimal.Decimal `gorm:"type:decimal(10,6);not null;default:0" json:"cost"`
		CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`

		Account Account `gorm:"foreignKey:AccountID;references:ID" json:"account"`
	}
)

func (Account) TableName() string        { return "tp_accounts" }
func (Project) TableName() string        { return "tp_projects" }
func (Task) TableName() string           { return "tp_tasks" }
func (TaskDependency) TableName() string { return "tp_task_dependencies" }
func (Generation) TableName() string     { return "tp_generations" }
func (Lead) TableName() string           { return "tp_leads" }
func (OutreachStep) TableName() string   { return "tp_outreach_steps" }
func (Subscription) TableName() string   { return "tp_subscriptions" }
func (UsageRecord) TableName() string    { return "tp_usage" }
