package personalinfo

import (
	"context"
	"errors"

	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
	"bookkeeping-app-go/internal/repository/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var upsertColumns = []string{
	"full_name",
	"tin",
	"birth_date",
	"birth_place",
	"citizenship",
	"civil_status",
	"gender",
	"address",
	"phone",
	"spouse_name",
	"spouse_tin",
	"employment_status",
	"philhealth_number",
	"sss_number",
	"pagibig_number",
	"updated_at",
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Transaction opens a transaction, or a savepoint when already inside one.
func (r *PostgresRepository) Transaction(ctx context.Context, fn func(personalinfodomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	return postgres.UserExists(r.db.WithContext(ctx), userID)
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID uint) (*personalinfodomain.PersonalInfo, error) {
	var info personalinfodomain.PersonalInfo
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, personalinfodomain.ErrPersonalInfoNotFound
		}
		return nil, err
	}
	return &info, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, info *personalinfodomain.PersonalInfo, expectedVersion *int64) error {
	info.ID = 0
	info.Version = 1

	conflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: append(clause.AssignmentColumns(upsertColumns), clause.Assignment{
			Column: clause.Column{Name: "version"},
			Value:  gorm.Expr("personal_info.version + 1"),
		}),
	}
	if expectedVersion != nil {
		conflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "personal_info", Name: "version"}, Value: *expectedVersion},
		}}
	}

	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(conflict, clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "version"}}}).
		Create(info)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return personalinfodomain.ErrVersionConflict
	}
	return nil
}

func (r *PostgresRepository) ListDependents(ctx context.Context, personalInfoID uint) ([]personalinfodomain.Dependent, error) {
	var dependents []personalinfodomain.Dependent
	if err := r.db.WithContext(ctx).
		Where("personal_info_id = ?", personalInfoID).
		Order("id asc").
		Find(&dependents).Error; err != nil {
		return nil, err
	}
	return dependents, nil
}

func (r *PostgresRepository) ListDependentIDs(ctx context.Context, personalInfoID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&personalinfodomain.Dependent{}).
		Where("personal_info_id = ?", personalInfoID).
		Order("id asc").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) DeleteDependent(ctx context.Context, personalInfoID, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND personal_info_id = ?", id, personalInfoID).
		Delete(&personalinfodomain.Dependent{}).Error
}

func (r *PostgresRepository) UpdateDependent(ctx context.Context, dependent *personalinfodomain.Dependent) error {
	result := r.db.WithContext(ctx).
		Model(&personalinfodomain.Dependent{}).
		Where("id = ? AND personal_info_id = ?", dependent.ID, dependent.PersonalInfoID).
		Updates(map[string]any{
			"dep_name":         dependent.DepName,
			"dep_birth_date":   dependent.DepBirthDate,
			"dep_relationship": dependent.DepRelationship,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return personalinfodomain.ErrDependentNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateDependent(ctx context.Context, dependent *personalinfodomain.Dependent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(dependent).Error
}
