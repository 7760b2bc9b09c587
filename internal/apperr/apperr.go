package apperr

import "errors"

// Workflow errors. Every mutating operation surfaces one of these to the
// caller; infrastructure failures are logged and retried, never returned
// through this set.
var (
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidToken         = errors.New("invalid token")
	ErrAlreadyConsumed      = errors.New("invitation already consumed")
	ErrExpired              = errors.New("invitation expired")
	ErrStaleDraft           = errors.New("stale draft version")
	ErrBriefNotAcknowledged = errors.New("brief not acknowledged")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidTimeline      = errors.New("invalid timeline")
	ErrInvalidSpec          = errors.New("invalid campaign spec")
	ErrAlreadyAssigned      = errors.New("creator already assigned")
	ErrAlreadyAcknowledged  = errors.New("brief already acknowledged")
	ErrEmailInUse           = errors.New("email already in use")
)

// HTTPStatus maps a workflow error to a response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrAlreadyConsumed),
		errors.Is(err, ErrAlreadyAssigned),
		errors.Is(err, ErrAlreadyAcknowledged),
		errors.Is(err, ErrEmailInUse),
		errors.Is(err, ErrStaleDraft):
		return 409
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrExpired),
		errors.Is(err, ErrBriefNotAcknowledged),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidTimeline),
		errors.Is(err, ErrInvalidSpec):
		return 400
	default:
		return 500
	}
}

// IsRecoverable reports whether err belongs to the workflow taxonomy and
// should be surfaced to the end user verbatim.
func IsRecoverable(err error) bool {
	return HTTPStatus(err) != 500
}
