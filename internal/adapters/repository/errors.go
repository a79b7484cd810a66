package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrLoadSeed        = errors.New("load seed failed")
)
