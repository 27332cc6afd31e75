package personalinfo

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrPersonalInfoNotFound    = errors.New("personal info not found")
	ErrDependentNotFound       = errors.New("dependent not found")
	ErrInvalidEmploymentStatus = errors.New("invalid employment status")
	ErrInvalidDate             = errors.New("invalid date")
	ErrDependentNameRequired   = errors.New("dep_name is required")
	ErrVersionConflict         = errors.New("personal info was modified concurrently")
	ErrPersonalInfoNotResolved = errors.New("personal info id not resolved after upsert")
)
