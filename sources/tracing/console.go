package tracing

import (
	"context"
	"log/slog"
	"os"
	"time"
)

const (
	ExecutionTime   = "exe_time"
	OutsiderKind    = "outsider_kind"
	ProxyUrl        = "proxy_url"
	ProxyRes        = "proxy_res"
	AiKind          = "ai_kind"
	AiModel         = "ai_model"
	AiProvider      = "ai_provider"
	AiAttempt       = "ai_attempt"
	AiBackoff       = "ai_backoff"
	AiTokens        = "ai_tokens"
	AiCost          = "ai_cost"
	InnerError      = "inner_error"
	AccountId       = "account_id"
	AccountEmail    = "account_email"
	ProjectId       = "project_id"
	TaskId          = "task_id"
	TaskStatus      = "task_status"
	TaskPriority    = "task_priority"
	GenerationId    = "generation_id"
	Language        = "language"
	QualityScore    = "quality_score"
	QualityLevel    = "quality_level"
	LeadOwner       = "lead_owner"
	LeadRepo        = "lead_repo"
	LeadScore       = "lead_score"
	SequenceKey     = "sequence_key"
	SequenceStep    = "sequence_step"
	PlanKey         = "plan_key"
	StripeEvent     = "stripe_event"
	SqlQuery        = "sql_query"
	HttpMethod      = "http_method"
	HttpPath        = "http_path"
	HttpStatus      = "http_status"
	Scope           = "scope"
	RateLimitRemain = "rate_limit_remaining"
)

type Logger struct {
	log *slog.Logger
	ctx context.Context
}

func NewConsoleLogger() *Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger.InfoContext(ctx, "Initializing logger")
	return &Logger{log: logger, ctx: ctx}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), ctx: l.ctx}
}

func (l *Logger) D(msg string, args ...any) {
	l.log.DebugContext(l.ctx, msg, args...)
}

func (l *Logger) I(msg string, args ...any) {
	l.log.InfoContext(l.ctx, msg, args...)
}

func (l *Logger) W(msg string, args ...any) {
	l.log.WarnContext(l.ctx, msg, args...)
}

func (l *Logger) E(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
}

func (l *Logger) F(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
	panic(msg)
}
