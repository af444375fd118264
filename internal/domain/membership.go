package domain

import "time"

type MembershipRole string

const (
	MembershipRoleOwner  MembershipRole = "OWNER"
	MembershipRoleMember MembershipRole = "MEMBER"
)

// Membership links a user to the family whose shared data they can access.
// A user holds at most one membership at a time; the database enforces this
// with a unique index on user_id.
type Membership struct {
	UserID   int32          `json:"user_id"`
	FamilyID int32          `json:"family_id"`
	Role     MembershipRole `json:"role"`
	JoinedOn time.Time      `json:"joined_on"`
}
