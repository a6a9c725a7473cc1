package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNoGameData            = errors.New("no game data in requested window")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
