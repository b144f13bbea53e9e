package alert

import "errors"

var (
	// ErrInvalidAlert is returned for alerts missing deliverable content.
	ErrInvalidAlert = errors.New("alert: not deliverable")

	// ErrInvalidConfig is returned when the Postmark channel is enabled
	// with incomplete configuration.
	ErrInvalidConfig = errors.New("alert: invalid configuration")

	// ErrFailedToSendAlert wraps provider delivery failures.
	ErrFailedToSendAlert = errors.New("alert: failed to send")
)
