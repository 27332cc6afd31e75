package duedates

import (
	"context"
	"errors"
	"testing"
	"time"

	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 9, 30, 0, 0, time.UTC)
}

func findAgency(dates []DueDate, agency string) []DueDate {
	var result []DueDate
	for _, due := range dates {
		if due.Agency == agency {
			result = append(result, due)
		}
	}
	return result
}

func TestSelfEmployedPhilHealthDueEndOfMonth(t *testing.T) {
	dates := Calculate(Membership{EmploymentStatus: "self-employed", PhilHealthNumber: "12-345"}, day(2025, time.June, 10))

	phil := findAgency(dates, AgencyPhilHealth)
	if len(phil) != 1 || phil[0].Date.Format(DateLayout) != "2025-06-30" {
		t.Fatalf("unexpected PhilHealth dates: %+v", phil)
	}
	if phil[0].Description != "PhilHealth contribution payment (Self-employed) - Form PMRF, PPP5" {
		t.Fatalf("unexpected description %q", phil[0].Description)
	}
}

func TestEmployedPhilHealthDependsOnLastDigit(t *testing.T) {
	cases := []struct {
		number string
		want   string
	}{
		{"1003", "2025-07-15"},
		{"1007", "2025-07-20"},
		{"1000", "2025-07-20"},
		{"100X", "2025-07-20"},
	}

	for _, tc := range cases {
		dates := Calculate(Membership{EmploymentStatus: "employed", PhilHealthNumber: tc.number}, day(2025, time.June, 10))
		phil := findAgency(dates, AgencyPhilHealth)
		if len(phil) != 1 || phil[0].Date.Format(DateLayout) != tc.want {
			t.Fatalf("number %s: expected %s, got %+v", tc.number, tc.want, phil)
		}
	}
}

func TestSSSAndPagIBIGRollOverYear(t *testing.T) {
	dates := Calculate(Membership{
		EmploymentStatus: "self-employed",
		SSSNumber:        "34-1",
		PagIBIGNumber:    "1212",
	}, day(2025, time.December, 5))

	sss := findAgency(dates, AgencySSS)
	if len(sss) != 1 || sss[0].Date.Format(DateLayout) != "2026-01-31" {
		t.Fatalf("unexpected SSS dates: %+v", sss)
	}
	if sss[0].Description != "SSS contribution payment (Self-employed) - Form RS-1, RS-5" {
		t.Fatalf("unexpected SSS description %q", sss[0].Description)
	}

	pag := findAgency(dates, AgencyPagIBIG)
	if len(pag) != 2 {
		t.Fatalf("expected monthly and quarterly Pag-IBIG entries, got %+v", pag)
	}
	if pag[0].Date.Format(DateLayout) != "2026-01-10" || pag[1].Date.Format(DateLayout) != "2026-01-01" {
		t.Fatalf("unexpected Pag-IBIG dates: %s %s", pag[0].Date.Format(DateLayout), pag[1].Date.Format(DateLayout))
	}
}

func TestEmployedPagIBIGHasNoQuarterlyOption(t *testing.T) {
	dates := Calculate(Membership{EmploymentStatus: "employed", PagIBIGNumber: "1", SSSNumber: "2"}, day(2025, time.February, 1))

	pag := findAgency(dates, AgencyPagIBIG)
	if len(pag) != 1 || pag[0].Description != "Pag-IBIG contribution payment (Employed) - Form ER1, MDF, MRS" {
		t.Fatalf("unexpected Pag-IBIG dates: %+v", pag)
	}
	sss := findAgency(dates, AgencySSS)
	if len(sss) != 1 || sss[0].Date.Format(DateLayout) != "2025-03-31" {
		t.Fatalf("unexpected SSS dates: %+v", sss)
	}
}

func TestDueTodayIsKept(t *testing.T) {
	now := time.Date(2025, time.June, 30, 23, 0, 0, 0, time.UTC)
	dates := Calculate(Membership{EmploymentStatus: "self-employed", PhilHealthNumber: "5"}, now)

	if len(findAgency(dates, AgencyPhilHealth)) != 1 {
		t.Fatalf("expected due date on the current day to be included")
	}
}

func TestNoMembershipNumbersYieldsNothing(t *testing.T) {
	if dates := Calculate(Membership{EmploymentStatus: "employed"}, day(2025, time.June, 10)); len(dates) != 0 {
		t.Fatalf("expected no due dates, got %+v", dates)
	}
}

type stubSource struct {
	info *personalinfodomain.PersonalInfo
	err  error
}

func (s stubSource) GetInfo(ctx context.Context, userID uint) (*personalinfodomain.PersonalInfo, error) {
	return s.info, s.err
}

func TestForUserWithoutPersonalInfo(t *testing.T) {
	service := NewService(stubSource{err: personalinfodomain.ErrPersonalInfoNotFound}, time.UTC)

	dates, err := service.ForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if dates == nil || len(dates) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", dates)
	}

	failing := NewService(stubSource{err: errors.New("db down")}, time.UTC)
	if _, err := failing.ForUser(context.Background(), 1); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestForUserUsesStoredMembership(t *testing.T) {
	number := "2002"
	service := NewService(stubSource{info: &personalinfodomain.PersonalInfo{
		EmploymentStatus: "employed",
		PhilHealthNumber: &number,
	}}, time.UTC)
	service.now = func() time.Time { return day(2025, time.March, 3) }

	dates, err := service.ForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(dates) != 1 || dates[0].Date.Format(DateLayout) != "2025-04-15" {
		t.Fatalf("unexpected dates: %+v", dates)
	}
}
