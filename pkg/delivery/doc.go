// Package delivery queues outgoing emails and drives them to a sender
// with retries.
//
// Every email passes through a queue item that tracks attempts and the
// last error. Delivery is attempted immediately unless the email carries
// a future ScheduledAt, in which case a timer holds it until the time
// arrives. Failed attempts are retried with exponential backoff until
// the attempt budget runs out; items that exhaust it stay in the queue
// as failed so operators can inspect, retry, or let the janitor purge
// them.
//
// The queue store is pluggable: the default MemoryStore keeps items in
// process, RedisStore shares them across instances. Timers go through
// the Scheduler interface so tests can drive retries without sleeping.
//
// Usage:
//
//	svc := delivery.New(sender, renderer,
//		delivery.WithStore(delivery.NewRedisStore(client)),
//		delivery.WithLogger(logger),
//	)
//	item, err := svc.SendTemplate(ctx, templates.TypeWelcome,
//		[]string{"user@example.com"},
//		templates.Welcome{Name: "Jane", DashboardLink: "https://app.example.com"},
//		delivery.SendOptions{},
//	)
package delivery
