package models

// DefaultCategoryID is assigned to funds created without an explicit
// category. The id is a schema constant, not a lookup: it matches the
// catch-all "Other" row only in the basic 4-category fixture, not in the
// extended 7-category one.
const DefaultCategoryID int64 = 4

// Category is a named grouping that funds reference. Categories are created
// by seed data or an admin call and are immutable afterwards.
type Category struct {
	ID       int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Category string `json:"category" db:"category" gorm:"type:varchar(50);not null;default:'Other'"`
}

func (Category) TableName() string {
	return "categories"
}
