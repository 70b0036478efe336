package api

import (
	"time"

	"github.com/openfund-app/backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	fundHandler     fundHandler
	categoryHandler categoryHandler
	uploadHandler   uploadHandler
}

// FundResponse is the client representation of a fund: every stored
// attribute plus the derived days_left.
type FundResponse struct {
	models.Fund
	DaysLeft int `json:"days_left"`
}

func newFundResponse(fund models.Fund) FundResponse {
	return FundResponse{
		Fund:     fund,
		DaysLeft: fund.DaysLeft(time.Now().UTC()),
	}
}

func newFundResponses(funds []*models.Fund) []FundResponse {
	responses := make([]FundResponse, 0, len(funds))
	for _, fund := range funds {
		responses = append(responses, newFundResponse(*fund))
	}
	return responses
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
