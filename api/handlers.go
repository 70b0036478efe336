package api

import (
	"github.com/openfund-app/backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, uploadDir string) *routeHandlers {
	return &routeHandlers{
		fundHandler:     newFundHandler(database.FundRepo()),
		categoryHandler: newCategoryHandler(database.CategoryRepo()),
		uploadHandler:   newUploadHandler(database.FundRepo(), uploadDir),
	}
}
