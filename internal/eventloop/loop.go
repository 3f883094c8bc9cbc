// Package eventloop runs handlers one at a time on a single goroutine.
//
// Every monitor callback and timer fire for a widget session is posted to the
// session's Loop, which gives the autoplay scheduler the run-to-completion
// semantics it relies on without any locking of its own.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/clock"
)

// ErrClosed is returned when work is posted to a closed loop.
var ErrClosed = errors.New("eventloop: closed")

const defaultQueueSize = 64

// Loop serializes posted functions onto one goroutine.
type Loop struct {
	queue     chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	log       zerolog.Logger
}

// New starts a loop. queueSize <= 0 selects a default.
func New(log zerolog.Logger, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	l := &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
		log:   log,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("eventloop: handler panicked")
		}
	}()
	fn()
}

// Post enqueues fn. It blocks while the queue is full.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}
	select {
	case <-l.done:
		return ErrClosed
	case l.queue <- fn:
		return nil
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop and waits for the running handler to return.
// Queued handlers that have not started are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.wg.Wait()
	})
}

// Every implements clock.Clock. Fires are posted to the loop; a fire that was
// queued before Stop is discarded when it reaches the front of the queue.
func (l *Loop) Every(d time.Duration, fn func()) clock.Timer {
	t := &loopTimer{stop: make(chan struct{})}
	ticker := time.NewTicker(d)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fire := func() {
					if t.stopped.Load() {
						return
					}
					fn()
				}
				select {
				case l.queue <- fire:
				case <-t.stop:
					return
				case <-l.done:
					return
				}
			case <-t.stop:
				return
			case <-l.done:
				return
			}
		}
	}()
	return t
}

type loopTimer struct {
	stopped  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

func (t *loopTimer) Stop() {
	t.stopped.Store(true)
	t.stopOnce.Do(func() { close(t.stop) })
}
