package domain

import "errors"

var (
	// ErrInvalidIndex is returned when a choice index falls outside the
	// question's selections.
	ErrInvalidIndex = errors.New("choice index out of range")
	// ErrUnknownQuestion is returned when a question ID is not part of the model.
	ErrUnknownQuestion = errors.New("question not found in model")
	// ErrGroupNotFound indicates the question group or its questions do not exist.
	ErrGroupNotFound = errors.New("question group not found")
	// ErrStorageUnavailable indicates an I/O failure talking to the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnauthenticated is returned when no valid user can be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAlreadySubmitted guards against a second submit on the same session.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrNotSubmitted is returned by post-submit accessors called before submit.
	ErrNotSubmitted = errors.New("quiz not submitted yet")
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
)
