// Package async runs functions in background goroutines and exposes their
// results through type-safe futures.
//
// A Future can be awaited unconditionally, against a context, or with a
// plain timeout. A caller that stops waiting does not stop the computation:
// the goroutine finishes on its own, which lets supervisors abandon slow
// work without leaking partial state into the result.
//
//	fut := async.Async(ctx, job, func(ctx context.Context, j Job) (Receipt, error) {
//		return process(ctx, j)
//	})
//
//	receipt, err := fut.AwaitContext(ctx)
//	if errors.Is(err, context.DeadlineExceeded) {
//		// the work was abandoned, not interrupted
//	}
package async
