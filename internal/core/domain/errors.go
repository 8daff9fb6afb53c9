package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidJSON indicates raw descriptor text could not be parsed
	ErrInvalidJSON = errors.New("invalid json")

	// ErrWrongMode indicates an edit was attempted in the other view mode
	ErrWrongMode = errors.New("operation not allowed in current mode")

	// ErrIndexOutOfRange indicates a list item position does not exist
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownField indicates a descriptor or item field name is not recognised
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownList indicates a list name other than api_filters or backend_filters
	ErrUnknownList = errors.New("unknown list")

	// ErrSubmissionPending indicates a submit is already in flight for the session
	ErrSubmissionPending = errors.New("submission already pending")

	// ErrSessionBusy indicates another write to the same editor session did not finish in time
	ErrSessionBusy = errors.New("editor session busy")
)
