package model

import "errors"

// Sentinel kinds for ingestion errors, shared by the service and its transports.
var (
	ErrInvalidUpdate = errors.New("invalid update")
	ErrBackpressure  = errors.New("update queue full")
	ErrNotAccepting  = errors.New("updates not accepted")
)
