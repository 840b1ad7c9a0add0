package employee

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	Upsert(ctx context.Context, e *Employee) error
	HasReports(ctx context.Context, managerID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

// Upsert inserts e or, when the id already exists, overwrites the
// provisioned attributes.
func (r *repository) Upsert(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"employee_number", "full_name", "email", "employee_type", "manager_id", "updated_at",
			}),
		}).
		Create(e).Error
}

// HasReports reports whether any employee names managerID as their manager.
func (r *repository) HasReports(ctx context.Context, managerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count > 0, err
}
