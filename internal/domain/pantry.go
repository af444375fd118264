package domain

import "time"

type PantryItem struct {
	ID        int32      `json:"id"`
	FamilyID  int32      `json:"family_id"`
	Name      string     `json:"name"`
	Quantity  int32      `json:"quantity"`
	Unit      string     `json:"unit"`
	Category  string     `json:"category"`
	ExpiresOn *time.Time `json:"expires_on,omitempty"`
	CreatedBy int32      `json:"created_by"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
}
