package duedates

import "time"

const (
	AgencyPhilHealth = "PhilHealth"
	AgencySSS        = "SSS"
	AgencyPagIBIG    = "Pag-IBIG"

	DateLayout = "2006-01-02"
)

type Membership struct {
	EmploymentStatus string
	PhilHealthNumber string
	SSSNumber        string
	PagIBIGNumber    string
}

type DueDate struct {
	Agency           string
	Description      string
	Date             time.Time
	MembershipNumber string
}
