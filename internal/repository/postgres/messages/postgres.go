package messages

import (
	"context"

	messagesdomain "bookkeeping-app-go/internal/domain/messages"
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

func (r *PostgresRepository) Create(ctx context.Context, message *messagesdomain.Message) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error
	if postgres.IsForeignKeyViolation(err) {
		return messagesdomain.ErrUserNotFound
	}
	return err
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID uint) ([]messagesdomain.Thread, error) {
	var threads []messagesdomain.Thread
	if err := r.db.WithContext(ctx).
		Table("messages AS m").
		Select("m.id, m.sender_id, m.receiver_id, m.message, m.timestamp, u.name AS sender_name, u.role AS sender_role").
		Joins("JOIN users u ON u.id = m.sender_id").
		Where("m.sender_id = ? OR m.receiver_id = ?", userID, userID).
		Order("m.timestamp asc").
		Order("m.id asc").
		Scan(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}
