package model

import "errors"

// Domain sentinel errors shared by the store, the service and the transports.
var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrUserNotFound  = errors.New("user not found")
)
