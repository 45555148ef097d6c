package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgDriverNotFound     = "driver not found"
	ErrMsgVehicleNotFound    = "vehicle not found"
	ErrMsgSyncRunNotFound    = "sync run not found"
	ErrMsgSyncInProgress     = "a sync run is already in progress"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgInvalidEntityType  = "invalid entity type"
	ErrMsgUpstreamAuth       = "upstream authentication failed"
	ErrMsgModuleUnavailable  = "upstream module unavailable"
	ErrMsgRunAlreadyFinished = "sync run already finished"
	ErrMsgDuplicateRecord    = "record already cached"
)

// Common domain errors. Wrap with fmt.Errorf("%w: ...", domain.ErrXxx) for context.
var (
	ErrDriverNotFound     = errors.New(ErrMsgDriverNotFound)
	ErrVehicleNotFound    = errors.New(ErrMsgVehicleNotFound)
	ErrSyncRunNotFound    = errors.New(ErrMsgSyncRunNotFound)
	ErrSyncInProgress     = errors.New(ErrMsgSyncInProgress)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
	ErrInvalidEntityType  = errors.New(ErrMsgInvalidEntityType)
	ErrUpstreamAuth       = errors.New(ErrMsgUpstreamAuth)
	ErrModuleUnavailable  = errors.New(ErrMsgModuleUnavailable)
	ErrRunAlreadyFinished = errors.New(ErrMsgRunAlreadyFinished)
	ErrDuplicateRecord    = errors.New(ErrMsgDuplicateRecord)
)
