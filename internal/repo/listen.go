package repo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// reservationsChannel is the Postgres NOTIFY channel fired by the trigger
// installed in the migrations whenever a reservation row is inserted,
// updated, or deleted.
const reservationsChannel = "reservations_changed"

// Listener turns Postgres LISTEN/NOTIFY into an in-process change signal.
// The payload is deliberately dropped: a notification only means "the
// reservation list may have changed, re-fetch", never a diff. Subscribers
// that re-derive from a signal can never drift from server truth.
type Listener struct {
	pool *pgxpool.Pool
	log  *slog.Logger

	mu   sync.Mutex
	subs map[int]chan struct{}
	next int

	// retryDelay is the pause before re-acquiring a connection after a
	// listen failure. Overridable in tests.
	retryDelay time.Duration
}

// NewListener builds a Listener on the given pool. Call Run to start it.
func NewListener(pool *pgxpool.Pool, log *slog.Logger) *Listener {
	return &Listener{
		pool:       pool,
		log:        log,
		subs:       make(map[int]chan struct{}),
		retryDelay: 3 * time.Second,
	}
}

// Subscribe registers a change-signal channel and returns it with an
// unsubscribe function. The channel has capacity one and signals are
// coalesced: a subscriber that is still processing one signal will see at
// most one more, which is sufficient for re-fetch semantics.
func (l *Listener) Subscribe() (<-chan struct{}, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.next
	l.next++
	ch := make(chan struct{}, 1)
	l.subs[id] = ch

	return ch, func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// broadcast fans one signal out to every subscriber without blocking.
func (l *Listener) broadcast() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run listens for reservation change notifications until ctx is cancelled.
// A dedicated connection is held out of the pool for the duration; on any
// error the connection is dropped and re-acquired after a short delay, and
// a signal is broadcast so subscribers re-fetch anything missed while the
// listener was down.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn("reservation listener disconnected", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.retryDelay):
		}
		// Changes may have happened while disconnected.
		l.broadcast()
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+reservationsChannel); err != nil {
		return err
	}
	l.log.Info("listening for reservation changes", "channel", reservationsChannel)

	for {
		if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
			return err
		}
		l.broadcast()
	}
}
