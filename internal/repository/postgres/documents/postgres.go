package documents

import (
	"context"
	"errors"

	documentsdomain "bookkeeping-app-go/internal/domain/documents"
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

func (r *PostgresRepository) ListForms(ctx context.Context) ([]documentsdomain.Form, error) {
	var forms []documentsdomain.Form
	if err := r.db.WithContext(ctx).Order("form_name asc").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *PostgresRepository) GetFormByName(ctx context.Context, name string) (*documentsdomain.Form, error) {
	var form documentsdomain.Form
	if err := r.db.WithContext(ctx).Where("form_name = ?", name).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documentsdomain.ErrFormNotFound
		}
		return nil, err
	}
	return &form, nil
}

func (r *PostgresRepository) CreateForm(ctx context.Context, form *documentsdomain.Form) error {
	if err := r.db.WithContext(ctx).Create(form).Error; err != nil {
		if postgres.IsDuplicate(err) {
			return documentsdomain.ErrFormExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) EnsureForm(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "form_name"}}, DoNothing: true}).
		Create(&documentsdomain.Form{FormName: name}).Error
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	return postgres.UserExists(r.db.WithContext(ctx), userID)
}

func (r *PostgresRepository) CreateDocument(ctx context.Context, document *documentsdomain.Document) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(document).Error
}

func (r *PostgresRepository) GetDocument(ctx context.Context, id uint) (*documentsdomain.Document, error) {
	var document documentsdomain.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documentsdomain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *PostgresRepository) DeleteDocument(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&documentsdomain.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return documentsdomain.ErrDocumentNotFound
	}
	return nil
}

func (r *PostgresRepository) ListDocuments(ctx context.Context, filter documentsdomain.DocumentFilter) ([]documentsdomain.DocumentRow, error) {
	query := r.db.WithContext(ctx).
		Table("documents AS d").
		Select("d.id, d.user_id, d.file_name, d.file_path, d.quarter, d.year, d.uploaded_at, f.form_name, u.name AS client_name").
		Joins("JOIN bir_forms f ON f.id = d.form_id").
		Joins("JOIN users u ON u.id = d.user_id")
	if filter.UserID != 0 {
		query = query.Where("d.user_id = ?", filter.UserID)
	}
	if filter.FormName != "" {
		query = query.Where("f.form_name = ?", filter.FormName)
	}

	var rows []documentsdomain.DocumentRow
	if err := query.
		Order("d.year desc").
		Order("d.quarter desc").
		Order("d.id asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
