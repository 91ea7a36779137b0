package service

import (
	"errors"

	"github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/model"
)

// Sentinel errors returned by Service operations.
var (
	ErrNotFound      = model.ErrUserNotFound
	ErrNotStarted    = errors.New("service not started")
	ErrUnknownMetric = repository.ErrUnknownMetric
)
