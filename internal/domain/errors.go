package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCollection signals a RAG query against a kit with no assets.
	ErrEmptyCollection = errors.New("no assets to query")
	// ErrLinkInactive signals a deactivated or expired sharing link.
	ErrLinkInactive = errors.New("sharing link is inactive or has expired")
	// ErrGenerationBackend signals a configured generation backend failing mid-call.
	ErrGenerationBackend = errors.New("generation backend error")
	// ErrValidation signals invalid input data.
	ErrValidation = errors.New("validation failed")
)
