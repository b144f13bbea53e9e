package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the future does not
// complete before the timeout elapses.
var ErrTimeout = errors.New("async: future not completed before timeout")
