package grossrecords

import (
	"context"

	grossdomain "bookkeeping-app-go/internal/domain/grossrecords"
	"bookkeeping-app-go/internal/repository/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	return postgres.UserExists(r.db.WithContext(ctx), userID)
}

func (r *PostgresRepository) Create(ctx context.Context, record *grossdomain.GrossRecord) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
	if postgres.IsForeignKeyViolation(err) {
		return grossdomain.ErrUserNotFound
	}
	return err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uint) ([]grossdomain.GrossRecord, error) {
	var records []grossdomain.GrossRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
