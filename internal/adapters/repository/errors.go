package repository

import (
	"errors"

	"github.com/okian/roster/internal/domain/model"
)

// Sentinel kinds for session store errors.
var (
	ErrUnknownMetric = model.ErrUnknownMetric
	ErrNoGenerator   = errors.New("no record generator")
)
