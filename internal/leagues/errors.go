package leagues

import "errors"

var (
	ErrTooFewParticipants   = errors.New("at least two participants are required")
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrNoParticipants       = errors.New("no participants to draw")
	ErrInvalidGroupSize     = errors.New("group size must be at least 1")
	ErrEmptyGroupName       = errors.New("group name is required")
	ErrEmptyGroup           = errors.New("group must contain at least one participant")
	ErrDuplicateGroupName   = errors.New("group name already in use")
	ErrAlreadyGrouped       = errors.New("participant is already assigned to a group")
	ErrUnknownParticipant   = errors.New("participant does not belong to this competition")

	// ErrRegistrationIncomplete is returned when a random draw is requested
	// before the cup has all of its expected teams.
	ErrRegistrationIncomplete = errors.New("cup registration is incomplete")
	ErrScheduleExists         = errors.New("fixtures already exist")
	ErrNoGroups               = errors.New("cup has no groups")
)

// IsValidationError reports whether err was caused by invalid input rather
// than a persistence failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrTooFewParticipants,
		ErrDuplicateParticipant,
		ErrNoParticipants,
		ErrInvalidGroupSize,
		ErrEmptyGroupName,
		ErrEmptyGroup,
		ErrDuplicateGroupName,
		ErrAlreadyGrouped,
		ErrUnknownParticipant,
		ErrRegistrationIncomplete,
		ErrNoGroups,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
