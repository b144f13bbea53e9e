package archive

import "errors"

var (
	// ErrInvalidPath rejects paths that escape the storage root.
	ErrInvalidPath = errors.New("archive: invalid storage path")
	// ErrInvalidConfig is returned when required settings are missing.
	ErrInvalidConfig = errors.New("archive: invalid configuration")
	// ErrUnknownBackend is returned by New for an unrecognized Backend.
	ErrUnknownBackend = errors.New("archive: unknown backend")

	ErrObjectNotFound = errors.New("archive: object not found")
	ErrBucketNotFound = errors.New("archive: bucket not found")

	ErrFailedToWriteObject     = errors.New("archive: failed to write object")
	ErrFailedToReadObject      = errors.New("archive: failed to read object")
	ErrFailedToDeleteObject    = errors.New("archive: failed to delete object")
	ErrFailedToListObjects     = errors.New("archive: failed to list objects")
	ErrFailedToCreateDirectory = errors.New("archive: failed to create directory")
	ErrFailedToGetAbsolutePath = errors.New("archive: failed to resolve absolute path")
	ErrFailedToLoadConfig      = errors.New("archive: failed to load AWS config")

	// Remote backends map provider responses onto these so callers can
	// branch without knowing S3 error codes.
	ErrAccessDenied       = errors.New("archive: access denied")
	ErrRequestTimeout     = errors.New("archive: request timed out")
	ErrServiceUnavailable = errors.New("archive: service temporarily unavailable")
	ErrOperationTimeout   = errors.New("archive: operation timed out")
	ErrOperationCanceled  = errors.New("archive: operation canceled")
)
