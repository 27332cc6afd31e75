package duedates

import (
	"time"

	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
)

// Calculate returns the upcoming contribution due dates for a membership.
// Dates are computed in now's location and only those falling on or after
// now's calendar day are kept.
func Calculate(m Membership, now time.Time) []DueDate {
	loc := now.Location()
	year, month, _ := now.Date()
	today := time.Date(year, month, now.Day(), 0, 0, 0, 0, loc)
	nextMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	employed := m.EmploymentStatus == personalinfodomain.EmploymentEmployed
	selfEmployed := m.EmploymentStatus == personalinfodomain.EmploymentSelfEmployed

	var dates []DueDate

	if m.PhilHealthNumber != "" {
		switch {
		case employed:
			day := 20
			if digit, ok := lastDigit(m.PhilHealthNumber); ok && digit >= 1 && digit <= 5 {
				day = 15
			}
			dates = append(dates, DueDate{
				Agency:           AgencyPhilHealth,
				Description:      "PhilHealth contribution payment (Employed) - Form PMRF, ER2",
				Date:             time.Date(nextMonth.Year(), nextMonth.Month(), day, 0, 0, 0, 0, loc),
				MembershipNumber: m.PhilHealthNumber,
			})
		case selfEmployed:
			dates = append(dates, DueDate{
				Agency:           AgencyPhilHealth,
				Description:      "PhilHealth contribution payment (Self-employed) - Form PMRF, PPP5",
				Date:             lastDayOfMonth(year, month, loc),
				MembershipNumber: m.PhilHealthNumber,
			})
		}
	}

	if m.SSSNumber != "" {
		description := "SSS contribution payment (Self-employed) - Form RS-1, RS-5"
		if employed {
			description = "SSS contribution payment (Employed) - Form R-1, R-1A, R-3"
		}
		dates = append(dates, DueDate{
			Agency:           AgencySSS,
			Description:      description,
			Date:             lastDayOfMonth(nextMonth.Year(), nextMonth.Month(), loc),
			MembershipNumber: m.SSSNumber,
		})
	}

	if m.PagIBIGNumber != "" && (employed || selfEmployed) {
		description := "Pag-IBIG contribution payment (Self-employed) - Form MDF, POF"
		if employed {
			description = "Pag-IBIG contribution payment (Employed) - Form ER1, MDF, MRS"
		}
		dates = append(dates, DueDate{
			Agency:           AgencyPagIBIG,
			Description:      description,
			Date:             time.Date(nextMonth.Year(), nextMonth.Month(), 10, 0, 0, 0, 0, loc),
			MembershipNumber: m.PagIBIGNumber,
		})
		if selfEmployed {
			dates = append(dates, DueDate{
				Agency:           AgencyPagIBIG,
				Description:      "Pag-IBIG contribution payment (Quarterly Option) - Form MDF, POF",
				Date:             firstDayOfNextQuarter(year, month, loc),
				MembershipNumber: m.PagIBIGNumber,
			})
		}
	}

	upcoming := make([]DueDate, 0, len(dates))
	for _, due := range dates {
		if !due.Date.Before(today) {
			upcoming = append(upcoming, due)
		}
	}
	return upcoming
}

// lastDigit reports the trailing digit of a membership number. A trailing
// non-digit yields ok=false.
func lastDigit(number string) (int, bool) {
	if number == "" {
		return 0, false
	}
	c := number[len(number)-1]
	if c < '0' || c > '9' {
		return 0, false
	}
	return int(c - '0'), true
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}

func firstDayOfNextQuarter(year int, month time.Month, loc *time.Location) time.Time {
	quarter := (int(month) - 1) / 3
	return time.Date(year, time.Month((quarter+1)*3+1), 1, 0, 0, 0, 0, loc)
}
