package domain

import "time"

// Family is the shared-data scope household members belong to.
type Family struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy int32     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}
