package database

import (
	"errors"

	"github.com/openfund-app/backend/errs"
	"github.com/openfund-app/backend/models"
	"gorm.io/gorm"
)

type FundRepo struct {
	db *gorm.DB
}

func NewFundRepo(db *gorm.DB) *FundRepo {
	return &FundRepo{db}
}

// FindAll returns a page of funds in insertion order
func (r *FundRepo) FindAll(limit, offset int) ([]*models.Fund, error) {
	var funds []*models.Fund
	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&funds).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "funds", err)
	}
	return funds, nil
}

// FindByCategory returns every fund in the given category. An unknown
// category yields an empty slice, not an error.
func (r *FundRepo) FindByCategory(categoryID int64) ([]*models.Fund, error) {
	var funds []*models.Fund
	err := r.db.Where("category_id = ?", categoryID).Order("id").Find(&funds).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list by category", "funds", err)
	}
	return funds, nil
}

// FindByID returns a fund by its ID
func (r *FundRepo) FindByID(id int64) (*models.Fund, error) {
	var fund models.Fund
	if err := r.db.First(&fund, id).Error; err != nil {
		return nil, r.translate("find", err)
	}
	return &fund, nil
}

// Add inserts a new fund and round-trips it through storage so generated
// fields (id, created_at) are populated on the returned value.
func (r *FundRepo) Add(fund *models.Fund) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fund).Error; err != nil {
			return err
		}
		return tx.First(fund, fund.ID).Error
	})
	if err != nil {
		return errs.NewDatabaseError("create", "fund", err)
	}
	return nil
}

// Update applies only the fields present in the patch and returns the
// updated fund. Absent fields are left untouched.
func (r *FundRepo) Update(id int64, patch models.FundPatch) (*models.Fund, error) {
	var fund models.Fund
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&fund, id).Error; err != nil {
			return err
		}
		changes := patch.Changes()
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&fund).UpdateColumns(changes).Error; err != nil {
			return err
		}
		return tx.First(&fund, id).Error
	})
	if err != nil {
		return nil, r.translate("update", err)
	}
	return &fund, nil
}

// Donate applies a donation as a single conditional increment so two
// concurrent donations to the same fund cannot lose an update.
func (r *FundRepo) Donate(id int64, amount int64) (*models.Fund, error) {
	var fund models.Fund
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Fund{}).Where("id = ?", id).UpdateColumns(map[string]any{
			"collected":    gorm.Expr("collected + ?", amount),
			"donate_count": gorm.Expr("donate_count + 1"),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&fund, id).Error
	})
	if err != nil {
		return nil, r.translate("donate to", err)
	}
	return &fund, nil
}

// Delete removes a fund permanently
func (r *FundRepo) Delete(id int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Fund{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return r.translate("delete", err)
	}
	return nil
}

// translate maps storage errors to the domain taxonomy: a missing row is
// the only recoverable domain error this layer produces.
func (r *FundRepo) translate(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("fund")
	}
	return errs.NewDatabaseError(operation, "fund", err)
}
