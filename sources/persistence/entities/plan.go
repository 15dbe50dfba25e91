package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Key         string    `gorm:"column:key;not null;index:idx_plan_key_created,priority:1"`
	DisplayName string    `gorm:"column:display_name;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now();index:idx_plan_key_created,priority:2,sort:desc"`

	MonthlyPrice decimal.Decimal `gorm:"column:monthly_price;type:decimal(10,2);not null"`

	// ProjectLimit < 0 means unlimited.
	ProjectLimit int `gorm:"column:project_limit;not null"`

	UsageGenerationDaily   int `gorm:"column:usage_generation_daily;not null"`
	UsageGenerationMonthly int `gorm:"column:usage_generation_monthly;not null"`
	UsageAnalysisDaily     int `gorm:"column:usage_analysis_daily;not null"`
	UsageAnalysisMonthly   int `gorm:"column:usage_analysis_monthly;not null"`

	SpendingDailyLimit   decimal.Decimal `gorm:"column:spending_daily_limit;type:decimal(10,2);not null"`
	SpendingMonthlyLimit decimal.Decimal `gorm:"column:spending_monthly_limit;type:decimal(10,2);not null"`
}

func (Plan) TableName() string {
	return "tp_plans"
}
