package grossrecords

import (
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type GrossRecord struct {
	ID          uint             `gorm:"primaryKey"`
	UserID      uint             `gorm:"not null;index"`
	User        *userdomain.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FormName    string           `gorm:"size:100;not null"`
	Month       string           `gorm:"size:20;not null"`
	GrossIncome decimal.Decimal  `gorm:"type:numeric(15,2);not null"`
	ComputedTax decimal.Decimal  `gorm:"type:numeric(15,2);not null"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

func (GrossRecord) TableName() string {
	return "gross_records"
}

type CreateInput struct {
	UserID      uint
	FormName    string
	Month       string
	GrossIncome decimal.Decimal
	// ComputedTax is derived from the form's rate when nil.
	ComputedTax *decimal.Decimal
}

// TaxRate pairs a gross-income form with its flat rate.
type TaxRate struct {
	FormName string
	Rate     decimal.Decimal
}

var TaxRates = []TaxRate{
	{FormName: "Form 2551Q (Percentage Tax)", Rate: decimal.RequireFromString("0.03")},
	{FormName: "Form 1701Q (Income Tax)", Rate: decimal.RequireFromString("0.08")},
	{FormName: "Form 2550M (VAT Monthly)", Rate: decimal.RequireFromString("0.12")},
}
