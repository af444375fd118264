package domain

import "time"

// Invitation admits one new member into a family. The canonical 8-character
// code is the primary key; rows are kept after use as an audit trail and are
// only removed by the retention job.
type Invitation struct {
	Code      string     `json:"code"`
	FamilyID  int32      `json:"family_id"`
	CreatedBy int32      `json:"created_by"`
	CreatedOn time.Time  `json:"created_on"`
	ExpiresOn time.Time  `json:"expires_on"`
	UsedOn    *time.Time `json:"used_on,omitempty"`
	UsedBy    *int32     `json:"used_by,omitempty"`
}

// IsUsed reports whether the invitation has been consumed. The transition is
// one-way; a used invitation never becomes unused again.
func (i *Invitation) IsUsed() bool {
	return i.UsedOn != nil
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return !i.ExpiresOn.After(now)
}
