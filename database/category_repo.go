package database

import (
	"errors"

	"github.com/openfund-app/backend/errs"
	"github.com/openfund-app/backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories from the database
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err)
	}
	return categories, nil
}

// FindByID returns a category by its ID
func (r *CategoryRepo) FindByID(id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("category")
		}
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return errs.NewDatabaseError("create", "category", err)
	}
	return nil
}
