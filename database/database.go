package database

import (
	"gorm.io/gorm"
)

type Database struct {
	fundRepo     *FundRepo
	categoryRepo *CategoryRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		fundRepo:     NewFundRepo(db),
		categoryRepo: NewCategoryRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) FundRepo() *FundRepo {
	return d.fundRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}
