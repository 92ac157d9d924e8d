package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user id does not resolve to an actor.
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound is returned when a content item id does not resolve.
	ErrItemNotFound = errors.New("content item not found")

	// ErrUnsupportedType is returned for content types outside the allow-list.
	ErrUnsupportedType = errors.New("content type not supported")

	// ErrInvalidNonce is returned when an anti-forgery token fails verification.
	ErrInvalidNonce = errors.New("invalid anti-forgery token")

	// ErrForbidden is returned when the actor lacks the edit capability.
	ErrForbidden = errors.New("forbidden")
)
