package grossrecords

import "context"

type Repository interface {
	UserExists(ctx context.Context, userID uint) (bool, error)
	Create(ctx context.Context, record *GrossRecord) error
	// ListByUser returns the user's records newest first.
	ListByUser(ctx context.Context, userID uint) ([]GrossRecord, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID uint, activityType, description string) error
}
