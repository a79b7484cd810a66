package service

import "github.com/okian/buildermatch/internal/domain/model"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = model.ErrNotAccepting
	ErrInvalidUpdate = model.ErrInvalidUpdate
	ErrBackpressure  = model.ErrBackpressure
)
