package grossrecords

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMissingFields  = errors.New("form_name and month are required")
	ErrNegativeAmount = errors.New("amounts must not be negative")
)
