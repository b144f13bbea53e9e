package mirror

import "errors"

var (
	ErrInvalidConfig       = errors.New("mirror: invalid config")
	ErrFailedToRecordJob   = errors.New("mirror: failed to record job")
	ErrFailedToRemoveJob   = errors.New("mirror: failed to remove job")
	ErrFailedToClearQueue  = errors.New("mirror: failed to clear queue")
	ErrFailedToListPending = errors.New("mirror: failed to list pending jobs")
)
