package domain

import "time"

type ShoppingItem struct {
	ID        int32     `json:"id"`
	FamilyID  int32     `json:"family_id"`
	Name      string    `json:"name"`
	Quantity  int32     `json:"quantity"`
	Note      string    `json:"note"`
	IsChecked bool      `json:"is_checked"`
	CheckedBy *int32    `json:"checked_by,omitempty"`
	CreatedBy int32     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
