package personalinfo

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	UserExists(ctx context.Context, userID uint) (bool, error)
	GetByUserID(ctx context.Context, userID uint) (*PersonalInfo, error)
	// Upsert inserts or updates the row keyed by user id and fills ID and
	// Version from the same statement. A non-nil expectedVersion restricts
	// the update to that stored version and yields ErrVersionConflict otherwise.
	Upsert(ctx context.Context, info *PersonalInfo, expectedVersion *int64) error
	ListDependents(ctx context.Context, personalInfoID uint) ([]Dependent, error)
	ListDependentIDs(ctx context.Context, personalInfoID uint) ([]uint, error)
	DeleteDependent(ctx context.Context, personalInfoID, id uint) error
	UpdateDependent(ctx context.Context, dependent *Dependent) error
	CreateDependent(ctx context.Context, dependent *Dependent) error
}
