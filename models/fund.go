package models

import "time"

// Fund represents a fundraising campaign. Collected and DonateCount are
// server-managed counters; every accepted donation moves them together.
type Fund struct {
	ID              int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	CategoryID      int64     `json:"category_id" db:"category_id" gorm:"not null;index"`
	Title           string    `json:"title" db:"title" gorm:"type:varchar(50);not null"`
	Description     string    `json:"description" db:"description" gorm:"type:varchar(100);not null"`
	Target          int64     `json:"target" db:"target" gorm:"not null"`
	Collected       int64     `json:"collected" db:"collected" gorm:"not null;default:0"`
	DonateCount     int64     `json:"donate_count" db:"donate_count" gorm:"not null;default:0"`
	PhotoURL        *string   `json:"photo_url" db:"photo_url" gorm:"type:text"`
	TargetDate      time.Time `json:"target_date" db:"target_date" gorm:"not null"`
	Location        *string   `json:"location,omitempty" db:"location" gorm:"type:text"`
	TeamInfo        *string   `json:"team_info,omitempty" db:"team_info" gorm:"type:text"`
	Link            *string   `json:"link,omitempty" db:"link" gorm:"type:text"`
	ContractAddress *string   `json:"contract_address,omitempty" db:"contract_address" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID;references:ID"`
}

func (Fund) TableName() string {
	return "funds"
}

// DaysLeft returns the whole days remaining until the target date, truncated
// toward zero. A fund past its target date reports zero; it does not close.
func (f Fund) DaysLeft(now time.Time) int {
	remaining := f.TargetDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Hours() / 24)
}
