package grossrecords

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeGrossRepo struct {
	users   map[uint]bool
	records []GrossRecord
}

func (r *fakeGrossRepo) UserExists(ctx context.Context, userID uint) (bool, error) {
	return r.users[userID], nil
}

func (r *fakeGrossRepo) Create(ctx context.Context, record *GrossRecord) error {
	record.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeGrossRepo) ListByUser(ctx context.Context, userID uint) ([]GrossRecord, error) {
	result := make([]GrossRecord, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			result = append(result, r.records[i])
		}
	}
	return result, nil
}

type failingActivities struct{}

func (failingActivities) Record(ctx context.Context, userID uint, activityType, description string) error {
	return errors.New("activity insert failed")
}

func TestComputeTax(t *testing.T) {
	cases := []struct {
		form  string
		gross string
		want  string
	}{
		{"Form 2551Q (Percentage Tax)", "10000", "300"},
		{"Form 1701Q (Income Tax)", "12345.67", "987.65"},
		{"Form 2550M (VAT Monthly)", "1000.50", "120.06"},
		{"BIR Form 2550Q VAT", "100", "12"},
		{"Unknown", "5000", "0"},
	}

	for _, tc := range cases {
		got := ComputeTax(tc.form, decimal.RequireFromString(tc.gross))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("%s: expected %s, got %s", tc.form, tc.want, got)
		}
	}
}

func TestCreateComputesTaxWhenOmitted(t *testing.T) {
	repo := &fakeGrossRepo{users: map[uint]bool{1: true}}
	service := NewService(repo, nil)

	record, activityErr, err := service.Create(context.Background(), CreateInput{
		UserID:      1,
		FormName:    "Form 2551Q (Percentage Tax)",
		Month:       "2025-03",
		GrossIncome: decimal.RequireFromString("2000"),
	})
	if err != nil || activityErr != nil {
		t.Fatalf("create: %v %v", err, activityErr)
	}
	if !record.ComputedTax.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected computed tax 60, got %s", record.ComputedTax)
	}

	supplied := decimal.RequireFromString("12.345")
	record, _, err = service.Create(context.Background(), CreateInput{
		UserID:      1,
		FormName:    "Form 2551Q (Percentage Tax)",
		Month:       "2025-04",
		GrossIncome: decimal.RequireFromString("2000"),
		ComputedTax: &supplied,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !record.ComputedTax.Equal(decimal.RequireFromString("12.35")) {
		t.Fatalf("expected supplied tax rounded to 12.35, got %s", record.ComputedTax)
	}

	records, _ := service.List(context.Background(), 1)
	if len(records) != 2 || records[0].Month != "2025-04" {
		t.Fatalf("expected newest first, got %+v", records)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := &fakeGrossRepo{users: map[uint]bool{1: true}}
	service := NewService(repo, nil)
	ctx := context.Background()

	if _, _, err := service.Create(ctx, CreateInput{UserID: 1, Month: "2025-01"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := service.Create(ctx, CreateInput{UserID: 1, FormName: "F", Month: "2025-01", GrossIncome: decimal.NewFromInt(-1)}); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if _, _, err := service.Create(ctx, CreateInput{UserID: 2, FormName: "F", Month: "2025-01"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateReportsActivityFailureSeparately(t *testing.T) {
	repo := &fakeGrossRepo{users: map[uint]bool{1: true}}
	service := NewService(repo, failingActivities{})

	record, activityErr, err := service.Create(context.Background(), CreateInput{
		UserID:      1,
		FormName:    "Form 1701Q (Income Tax)",
		Month:       "2025-05",
		GrossIncome: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record == nil || activityErr == nil {
		t.Fatalf("expected stored record and activity error")
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected record to be stored")
	}
}
