package models

import "time"

// FundPatch describes a partial update to a fund. Only fields that were
// present in the request payload are applied; the distinction between
// "absent" and "explicit null" is kept so nullable columns can be cleared.
type FundPatch struct {
	CategoryID      Optional[int64]     `json:"category_id"`
	Title           Optional[string]    `json:"title"`
	Description     Optional[string]    `json:"description"`
	Target          Optional[int64]     `json:"target"`
	Collected       Optional[int64]     `json:"collected"`
	DonateCount     Optional[int64]     `json:"donate_count"`
	PhotoURL        Optional[string]    `json:"photo_url"`
	TargetDate      Optional[time.Time] `json:"target_date"`
	Location        Optional[string]    `json:"location"`
	TeamInfo        Optional[string]    `json:"team_info"`
	Link            Optional[string]    `json:"link"`
	ContractAddress Optional[string]    `json:"contract_address"`
}

// Changes returns the column assignments for every field that was present
// in the payload. Null fields map to nil so nullable columns are cleared.
func (p FundPatch) Changes() map[string]any {
	changes := make(map[string]any)
	assign(changes, "category_id", p.CategoryID)
	assign(changes, "title", p.Title)
	assign(changes, "description", p.Description)
	assign(changes, "target", p.Target)
	assign(changes, "collected", p.Collected)
	assign(changes, "donate_count", p.DonateCount)
	assign(changes, "photo_url", p.PhotoURL)
	assign(changes, "target_date", p.TargetDate)
	assign(changes, "location", p.Location)
	assign(changes, "team_info", p.TeamInfo)
	assign(changes, "link", p.Link)
	assign(changes, "contract_address", p.ContractAddress)
	return changes
}

func assign[T any](changes map[string]any, column string, field Optional[T]) {
	if !field.Set {
		return
	}
	if field.Null {
		changes[column] = nil
		return
	}
	changes[column] = field.Value
}
