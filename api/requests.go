package api

import (
	"time"
	"unicode/utf8"

	"github.com/openfund-app/backend/errs"
	"github.com/openfund-app/backend/models"
)

const (
	titleMinLen       = 3
	titleMaxLen       = 50
	descriptionMinLen = 10
	descriptionMaxLen = 100
)

// CreateFundRequest is the payload for creating a fund. Collected and
// donate_count are normally server-managed but may be supplied by fixtures.
type CreateFundRequest struct {
	CategoryID      *int64    `json:"category_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Target          int64     `json:"target"`
	Collected       *int64    `json:"collected"`
	DonateCount     *int64    `json:"donate_count"`
	PhotoURL        *string   `json:"photo_url"`
	TargetDate      time.Time `json:"target_date"`
	Location        *string   `json:"location"`
	TeamInfo        *string   `json:"team_info"`
	Link            *string   `json:"link"`
	ContractAddress *string   `json:"contract_address"`
}

// Validate rejects the payload before any storage operation happens.
func (p CreateFundRequest) Validate(now time.Time) error {
	if n := utf8.RuneCountInString(p.Title); n < titleMinLen || n > titleMaxLen {
		return errs.NewValidationError("title", "must be between 3 and 50 characters")
	}
	if n := utf8.RuneCountInString(p.Description); n < descriptionMinLen || n > descriptionMaxLen {
		return errs.NewValidationError("description", "must be between 10 and 100 characters")
	}
	if p.Target <= 0 {
		return errs.NewValidationError("target", "must be strictly positive")
	}
	if p.Collected != nil && *p.Collected < 0 {
		return errs.NewValidationError("collected", "must not be negative")
	}
	if p.DonateCount != nil && *p.DonateCount < 0 {
		return errs.NewValidationError("donate_count", "must not be negative")
	}
	if p.TargetDate.IsZero() {
		return errs.NewValidationError("target_date", "is required")
	}
	if !p.TargetDate.After(now) {
		return errs.NewValidationError("target_date", "must be in the future")
	}
	return nil
}

// ToModel builds the fund entity, filling server-side defaults.
func (p CreateFundRequest) ToModel() models.Fund {
	fund := models.Fund{
		CategoryID:      models.DefaultCategoryID,
		Title:           p.Title,
		Description:     p.Description,
		Target:          p.Target,
		PhotoURL:        p.PhotoURL,
		TargetDate:      p.TargetDate,
		Location:        p.Location,
		TeamInfo:        p.TeamInfo,
		Link:            p.Link,
		ContractAddress: p.ContractAddress,
	}
	if p.CategoryID != nil {
		fund.CategoryID = *p.CategoryID
	}
	if p.Collected != nil {
		fund.Collected = *p.Collected
	}
	if p.DonateCount != nil {
		fund.DonateCount = *p.DonateCount
	}
	return fund
}

// validateFundPatch checks only the fields present in the patch, applying
// the same bounds as creation. Explicit null is rejected for columns the
// schema requires and allowed for the nullable descriptive ones.
func validateFundPatch(p models.FundPatch, now time.Time) error {
	if p.CategoryID.Set && p.CategoryID.Null {
		return errs.NewValidationError("category_id", "cannot be null")
	}
	if p.Title.Set {
		if p.Title.Null {
			return errs.NewValidationError("title", "cannot be null")
		}
		if n := utf8.RuneCountInString(p.Title.Value); n < titleMinLen || n > titleMaxLen {
			return errs.NewValidationError("title", "must be between 3 and 50 characters")
		}
	}
	if p.Description.Set {
		if p.Description.Null {
			return errs.NewValidationError("description", "cannot be null")
		}
		if n := utf8.RuneCountInString(p.Description.Value); n < descriptionMinLen || n > descriptionMaxLen {
			return errs.NewValidationError("description", "must be between 10 and 100 characters")
		}
	}
	if p.Target.Set {
		if p.Target.Null {
			return errs.NewValidationError("target", "cannot be null")
		}
		if p.Target.Value <= 0 {
			return errs.NewValidationError("target", "must be strictly positive")
		}
	}
	if p.Collected.Set {
		if p.Collected.Null {
			return errs.NewValidationError("collected", "cannot be null")
		}
		if p.Collected.Value < 0 {
			return errs.NewValidationError("collected", "must not be negative")
		}
	}
	if p.DonateCount.Set {
		if p.DonateCount.Null {
			return errs.NewValidationError("donate_count", "cannot be null")
		}
		if p.DonateCount.Value < 0 {
			return errs.NewValidationError("donate_count", "must not be negative")
		}
	}
	if p.TargetDate.Set {
		if p.TargetDate.Null {
			return errs.NewValidationError("target_date", "cannot be null")
		}
		if !p.TargetDate.Value.After(now) {
			return errs.NewValidationError("target_date", "must be in the future")
		}
	}
	return nil
}

// DonationRequest is the payload for donating to a fund.
type DonationRequest struct {
	Amount int64 `json:"amount"`
}

func (p DonationRequest) Validate() error {
	if p.Amount <= 0 {
		return errs.NewValidationError("amount", "must be strictly positive")
	}
	return nil
}

// CreateCategoryRequest is the payload for the admin category creation call.
type CreateCategoryRequest struct {
	Category string `json:"category"`
}

func (p CreateCategoryRequest) Validate() error {
	if p.Category == "" {
		return errs.NewValidationError("category", "is required")
	}
	if len(p.Category) > 50 {
		return errs.NewValidationError("category", "must be at most 50 characters")
	}
	return nil
}
