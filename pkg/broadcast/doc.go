// Package broadcast provides type-safe fan-out of values to multiple
// subscribers.
//
// The Broadcaster never blocks a publisher: values a subscriber cannot
// buffer are dropped and counted, and the subscription stays alive. This
// suits lossy observability streams such as lifecycle event feeds, where a
// momentarily slow listener must not stall the producing hot path.
//
//	b := broadcast.NewMemoryBroadcaster[Event](64)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	go func() {
//		for ev := range sub.Receive(ctx) {
//			render(ev)
//		}
//	}()
//
//	_ = b.Broadcast(ctx, Event{Type: "job:completed"})
//
// Subscriptions are tied to the context passed to Subscribe and are removed
// automatically when it is canceled.
package broadcast
