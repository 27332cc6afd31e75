package messages

import "errors"

var (
	ErrMissingFields = errors.New("sender_id, receiver_id and message are required")
	ErrUserNotFound  = errors.New("user not found")
)
