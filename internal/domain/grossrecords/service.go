package grossrecords

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const ActivityGrossRecord = "gross_record"

type Service struct {
	repo       Repository
	activities ActivityRecorder
}

func NewService(repo Repository, activities ActivityRecorder) *Service {
	return &Service{repo: repo, activities: activities}
}

func (s *Service) List(ctx context.Context, userID uint) ([]GrossRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create stores a record. The returned error is non-nil only when the record
// was not stored; activityErr reports a failed activity entry for a stored one.
func (s *Service) Create(ctx context.Context, input CreateInput) (record *GrossRecord, activityErr error, err error) {
	formName := strings.TrimSpace(input.FormName)
	month := strings.TrimSpace(input.Month)
	if formName == "" || month == "" {
		return nil, nil, ErrMissingFields
	}
	if input.GrossIncome.IsNegative() || (input.ComputedTax != nil && input.ComputedTax.IsNegative()) {
		return nil, nil, ErrNegativeAmount
	}

	exists, err := s.repo.UserExists(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrUserNotFound
	}

	tax := ComputeTax(formName, input.GrossIncome)
	if input.ComputedTax != nil {
		tax = input.ComputedTax.Round(2)
	}

	created := GrossRecord{
		UserID:      input.UserID,
		FormName:    formName,
		Month:       month,
		GrossIncome: input.GrossIncome.Round(2),
		ComputedTax: tax,
	}
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, nil, err
	}

	if s.activities != nil {
		description := fmt.Sprintf("Added gross record for %s - %s", formName, month)
		activityErr = s.activities.Record(ctx, input.UserID, ActivityGrossRecord, description)
	}
	return &created, activityErr, nil
}

// RateFor returns the flat rate for a form, or zero for unknown forms.
func RateFor(formName string) decimal.Decimal {
	for _, rate := range TaxRates {
		if rate.FormName == formName {
			return rate.Rate
		}
	}
	lower := strings.ToLower(formName)
	switch {
	case strings.Contains(lower, "percentage tax"):
		return TaxRates[0].Rate
	case strings.Contains(lower, "income tax"):
		return TaxRates[1].Rate
	case strings.Contains(lower, "vat"):
		return TaxRates[2].Rate
	}
	return decimal.Zero
}

func ComputeTax(formName string, grossIncome decimal.Decimal) decimal.Decimal {
	return grossIncome.Mul(RateFor(formName)).Round(2)
}
