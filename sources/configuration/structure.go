package configuration

import (
	"time"
)

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Security  SecurityConfig  `yaml:"security"`
	AI        AIConfig        `yaml:"ai"`
	Quality   QualityConfig   `yaml:"quality"`
	Tasks     TasksConfig     `yaml:"tasks"`
	GitHub    GitHubConfig    `yaml:"github"`
	Stripe    StripeConfig    `yaml:"stripe"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Outreach  OutreachConfig  `yaml:"outreach"`
	Proxy     ProxyConfig     `yaml:"proxy"`
	Network   NetworkConfig   `yaml:"network"`
	Throttler ThrottlerConfig `yaml:"throttler"`
	Features  FeaturesConfig  `yaml:"features"`
}

type ServiceConfig struct {
	APIPort                int `yaml:"api_port"`
	SystemMetricsPort      int `yaml:"system_metrics_port"`
	ApplicationMetricsPort int `yaml:"application_metrics_port"`
}

type DatabaseConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"dbname"`
	SSLMode     string `yaml:"ssl_mode"`
	TimeZone    string `yaml:"time_zone"`
	ReplicaHost string `yaml:"replica_host"`
	ReplicaPort string `yaml:"replica_port"`
}

type RedisConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type SecurityConfig struct {
	SecretKey      string        `yaml:"secret_key"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
}

type AIConfig struct {
	OllamaBaseURL   string `yaml:"ollama_base_url"`
	OllamaModel     string `yaml:"ollama_model"`
	OpenAIToken     string `yaml:"openai_token"`
	OpenAIModel     string `yaml:"openai_model"`
	OpenRouterToken string `yaml:"open_router_token"`
	OpenRouterModel string `yaml:"open_router_model"`

	ProviderWeights map[string]int `yaml:"provider_weights"`

	GenerationTimeout     time.Duration `yaml:"generation_timeout"`
	MaxCodeLength         int           `yaml:"max_code_length"`
	MaxPromptTokens       int           `yaml:"max_prompt_tokens"`
	ImprovementIterations int           `yaml:"improvement_iterations"`
	RetryAttempts         int           `yaml:"retry_attempts"`
}

type QualityConfig struct {
	MaxFunctionLength    int `yaml:"max_function_length"`
	MaxFileLength        int `yaml:"max_file_length"`
	MaxGeneralFileLength int `yaml:"max_general_file_length"`
	MaxComplexity        int `yaml:"max_complexity"`
	MaxParameters        int `yaml:"max_parameters"`
	MaxLineLength        int `yaml:"max_line_length"`
	MaxGeneralLineLength int `yaml:"max_general_line_length"`
	RequireDocComments   bool `yaml:"require_doc_comments"`
}

type TasksConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GitHubConfig struct {
	Token            string        `yaml:"token"`
	BaseURL          string        `yaml:"base_url"`
	MiningInterval   time.Duration `yaml:"mining_interval"`
	MaxLeadsPerRun   int           `yaml:"max_leads_per_run"`
	MinStars         int           `yaml:"min_stars"`
	MaxStars         int           `yaml:"max_stars"`
	MinContributors  int           `yaml:"min_contributors"`
	MaxContributors  int           `yaml:"max_contributors"`
	UpdatedSinceDays int           `yaml:"updated_since_days"`
	TargetLanguages  []string      `yaml:"target_languages"`
}

type StripeConfig struct {
	APIKey        string `yaml:"api_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	TrialDays     int64  `yaml:"trial_days"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	UseTLS   bool   `yaml:"use_tls"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

type OutreachConfig struct {
	DispatchInterval time.Duration `yaml:"dispatch_interval"`
	MinLeadScore     float64       `yaml:"min_lead_score"`
	OutreachBatch    int           `yaml:"outreach_batch"`
}

type ProxyConfig struct {
	Address  string `yaml:"address"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type NetworkConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type ThrottlerConfig struct {
	Limit time.Duration `yaml:"limit"`
}

type FeaturesConfig struct {
	UnleashAPIURL     string `yaml:"unleash_api_url"`
	UnleashAppName    string `yaml:"unleash_app_name"`
	UnleashInstanceID string `yaml:"unleash_instance_id"`
	RefreshInterval   int    `yaml:"refresh_interval"`
}
