package personalinfo

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetInfo returns the personal info row alone.
func (s *Service) GetInfo(ctx context.Context, userID uint) (*PersonalInfo, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Get returns the personal info of a user with dependents ordered by id.
func (s *Service) Get(ctx context.Context, userID uint) (*Record, error) {
	info, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dependents, err := s.repo.ListDependents(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	return &Record{Info: *info, Dependents: dependents}, nil
}

// Save upserts the personal info row and reconciles its dependents against
// the submitted list inside one transaction. Each dependent write runs in its
// own savepoint; failed writes are reported in SaveResult.Failures and do not
// abort the save.
func (s *Service) Save(ctx context.Context, input SaveInput) (*SaveResult, error) {
	info, err := input.personalInfo()
	if err != nil {
		return nil, err
	}
	submitted, err := input.dependents()
	if err != nil {
		return nil, err
	}

	var result SaveResult
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.UserExists(ctx, input.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}

		if err := tx.Upsert(ctx, &info, input.Version); err != nil {
			return err
		}
		if info.ID == 0 {
			return ErrPersonalInfoNotResolved
		}

		current, err := tx.ListDependentIDs(ctx, info.ID)
		if err != nil {
			return err
		}

		plan := planDependents(info.ID, current, submitted)
		result.Deleted, result.Updated, result.Inserted, result.Failures = applyPlan(ctx, tx, plan)

		stored, err := tx.ListDependents(ctx, info.ID)
		if err != nil {
			return err
		}
		result.Info = info
		result.Dependents = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type dependentPlan struct {
	personalInfoID uint
	deletes        []uint
	updates        []Dependent
	inserts        []Dependent
}

// planDependents diffs the submitted list against the stored ids. Submitted
// ids that are unknown for this personal info, or repeated, become inserts.
func planDependents(personalInfoID uint, current []uint, submitted []Dependent) dependentPlan {
	owned := make(map[uint]bool, len(current))
	for _, id := range current {
		owned[id] = true
	}

	plan := dependentPlan{personalInfoID: personalInfoID}
	kept := make(map[uint]bool, len(submitted))
	for _, dep := range submitted {
		dep.PersonalInfoID = personalInfoID
		if dep.ID != 0 && owned[dep.ID] && !kept[dep.ID] {
			kept[dep.ID] = true
			plan.updates = append(plan.updates, dep)
			continue
		}
		dep.ID = 0
		plan.inserts = append(plan.inserts, dep)
	}

	for _, id := range current {
		if !kept[id] {
			plan.deletes = append(plan.deletes, id)
		}
	}
	return plan
}

func applyPlan(ctx context.Context, tx Repository, plan dependentPlan) (deleted, updated, inserted int, failures []WriteFailure) {
	run := func(op string, id uint, fn func(Repository) error) bool {
		if err := tx.Transaction(ctx, fn); err != nil {
			failures = append(failures, WriteFailure{Op: op, DependentID: id, Err: err})
			return false
		}
		return true
	}

	for _, id := range plan.deletes {
		id := id
		if run(OpDelete, id, func(sp Repository) error {
			return sp.DeleteDependent(ctx, plan.personalInfoID, id)
		}) {
			deleted++
		}
	}
	for i := range plan.updates {
		dep := plan.updates[i]
		if run(OpUpdate, dep.ID, func(sp Repository) error {
			return sp.UpdateDependent(ctx, &dep)
		}) {
			updated++
		}
	}
	for i := range plan.inserts {
		dep := plan.inserts[i]
		if run(OpInsert, 0, func(sp Repository) error {
			return sp.CreateDependent(ctx, &dep)
		}) {
			inserted++
		}
	}
	return deleted, updated, inserted, failures
}

// FailureErr joins the recorded dependent failures, or returns nil.
func (r *SaveResult) FailureErr() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, failure.Err)
	}
	return errors.Join(errs...)
}

func (in SaveInput) personalInfo() (PersonalInfo, error) {
	status := strings.ToLower(strings.TrimSpace(in.EmploymentStatus))
	switch status {
	case "":
		status = EmploymentEmployed
	case EmploymentEmployed, EmploymentSelfEmployed:
	default:
		return PersonalInfo{}, ErrInvalidEmploymentStatus
	}

	birthDate, err := optionalDate(in.BirthDate)
	if err != nil {
		return PersonalInfo{}, err
	}

	return PersonalInfo{
		UserID:           in.UserID,
		FullName:         optional(in.FullName),
		TIN:              optional(in.TIN),
		BirthDate:        birthDate,
		BirthPlace:       optional(in.BirthPlace),
		Citizenship:      optional(in.Citizenship),
		CivilStatus:      optional(in.CivilStatus),
		Gender:           optional(in.Gender),
		Address:          optional(in.Address),
		Phone:            optional(in.Phone),
		SpouseName:       optional(in.SpouseName),
		SpouseTIN:        optional(in.SpouseTIN),
		EmploymentStatus: status,
		PhilHealthNumber: optional(in.PhilHealthNumber),
		SSSNumber:        optional(in.SSSNumber),
		PagIBIGNumber:    optional(in.PagIBIGNumber),
	}, nil
}

func (in SaveInput) dependents() ([]Dependent, error) {
	result := make([]Dependent, 0, len(in.Dependents))
	for _, dep := range in.Dependents {
		name := optional(dep.Name)
		if name == nil {
			return nil, ErrDependentNameRequired
		}
		birthDate, err := optionalDate(dep.BirthDate)
		if err != nil {
			return nil, err
		}
		result = append(result, Dependent{
			ID:              dep.ID,
			DepName:         name,
			DepBirthDate:    birthDate,
			DepRelationship: optional(dep.Relationship),
		})
	}
	return result, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// optionalDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func optionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if len(value) > len(dateLayout) {
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			value = ts.Format(dateLayout)
		}
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &parsed, nil
}

// FormatDate renders a stored date as YYYY-MM-DD.
func FormatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(dateLayout)
	return &formatted
}
