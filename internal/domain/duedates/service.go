package duedates

import (
	"context"
	"errors"
	"time"

	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
)

type PersonalInfoSource interface {
	GetInfo(ctx context.Context, userID uint) (*personalinfodomain.PersonalInfo, error)
}

type Service struct {
	source   PersonalInfoSource
	location *time.Location
	now      func() time.Time
}

func NewService(source PersonalInfoSource, location *time.Location) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{source: source, location: location, now: time.Now}
}

// ForUser returns upcoming due dates; users without personal info get none.
func (s *Service) ForUser(ctx context.Context, userID uint) ([]DueDate, error) {
	info, err := s.source.GetInfo(ctx, userID)
	if err != nil {
		if errors.Is(err, personalinfodomain.ErrPersonalInfoNotFound) {
			return []DueDate{}, nil
		}
		return nil, err
	}

	membership := Membership{
		EmploymentStatus: info.EmploymentStatus,
		PhilHealthNumber: deref(info.PhilHealthNumber),
		SSSNumber:        deref(info.SSSNumber),
		PagIBIGNumber:    deref(info.PagIBIGNumber),
	}
	return Calculate(membership, s.now().In(s.location)), nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
