package domain

type ValidationStatus string

const (
	ValidationValid         ValidationStatus = "valid"
	ValidationInvalid       ValidationStatus = "invalid"
	ValidationIndeterminate ValidationStatus = "indeterminate"
)

const (
	ValidationReasonIncomplete  = "incomplete"
	ValidationReasonNotFound    = "not_found"
	ValidationReasonAlreadyUsed = "already_used"
	ValidationReasonExpired     = "expired"
)

// ValidationResult is the advisory outcome of a pre-commit code check, used
// for live feedback while the user types. It is a snapshot, never a
// reservation: a valid result does not hold the code.
type ValidationResult struct {
	Status ValidationStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
}
