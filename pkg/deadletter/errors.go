package deadletter

import "errors"

var (
	ErrFailedToCreateSink    = errors.New("deadletter: failed to create sink")
	ErrFailedToStoreEntry    = errors.New("deadletter: failed to store entry")
	ErrFailedToListEntries   = errors.New("deadletter: failed to list entries")
	ErrFailedToDecodeEntry   = errors.New("deadletter: failed to decode entry")
	ErrNoEntriesToExport     = errors.New("deadletter: no entries to export")
	ErrFailedToExportEntries = errors.New("deadletter: failed to export entries")
)
