package messages

import "context"

type Repository interface {
	UserExists(ctx context.Context, userID uint) (bool, error)
	Create(ctx context.Context, message *Message) error
	// ListForUser returns messages sent or received by the user, oldest first.
	ListForUser(ctx context.Context, userID uint) ([]Thread, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID uint, activityType, description string) error
}
