package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrChatNotFound  = errors.New("chat not found")
	ErrMatchNotFound = errors.New("match not found")

	ErrCannotSwipeSelf    = errors.New("cannot swipe yourself")
	ErrMaxMessagesReached = errors.New("maximum messages reached")
	ErrChatBusy           = errors.New("chat has a send in progress")

	ErrNotMatchParticipant = errors.New("user is not part of this match")
	ErrForbidden           = errors.New("operation requires admin role")
	ErrNotPersona          = errors.New("user is not an imported persona")

	ErrDuplicatePersona = errors.New("persona with this linkedin url already exists")

	ErrUpstreamUnavailable = errors.New("scoring model unavailable")
	ErrInvalidToken        = errors.New("invalid or expired token")
)
