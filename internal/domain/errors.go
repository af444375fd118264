package domain

import "errors"

// Admission failure kinds. The UI behaves differently per kind, so callers
// receive them distinctly; none are collapsed into a generic failure.
var (
	ErrCodeIncomplete     = errors.New("invitation code is incomplete")
	ErrInviteNotFound     = errors.New("invitation not found")
	ErrInviteUsed         = errors.New("invitation already used")
	ErrInviteExpired      = errors.New("invitation has expired")
	ErrMembershipConflict = errors.New("user already belongs to a family")
	ErrIssuanceExhausted  = errors.New("could not generate a unique invitation code")
	ErrDuplicateCode      = errors.New("invitation code already exists")
)

var (
	ErrNotFamilyMember = errors.New("user is not a member of this family")
	ErrUserNotFound    = errors.New("user not found")
	ErrFamilyNotFound  = errors.New("family not found")
	ErrItemNotFound    = errors.New("item not found")
)
