package component

import (
	"context"
	"sync"
	"time"

	"cordial/internal/core/domain"
)

// lifecycle tracks a container's timeout state machine: active until it is
// explicitly stopped or the monotonic clock passes the recorded expiry.
// Both terminal transitions happen exactly once, fire the on-timeout and
// detach callbacks, and cancel the pending watcher.
type lifecycle struct {
	mu        sync.Mutex
	timeout   time.Duration
	expiry    time.Time
	finished  bool
	timedOut  bool
	kill      chan struct{}
	done      chan struct{}
	detach    func()
	onTimeout func()
}

func newLifecycle(timeout time.Duration) *lifecycle {
	return &lifecycle{
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// startListening arms the timeout watcher and records the detach callback
// used to unregister from whichever store holds the container. Re-adding a
// container to a store re-arms the watcher.
func (l *lifecycle) startListening(detach, onTimeout func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finished {
		return
	}

	l.detach = detach
	l.onTimeout = onTimeout

	if l.timeout <= 0 {
		return
	}

	if l.kill != nil {
		close(l.kill)
	}
	l.expiry = time.Now().Add(l.timeout)
	l.kill = make(chan struct{})
	go l.watch(l.kill)
}

// watch sleeps until the recorded expiry, then re-checks it: interaction
// activity may have pushed the expiry forward in the meantime.
func (l *lifecycle) watch(kill chan struct{}) {
	for {
		l.mu.Lock()
		if l.finished {
			l.mu.Unlock()
			return
		}
		wait := time.Until(l.expiry)
		l.mu.Unlock()

		if wait <= 0 {
			l.fire(true)
			return
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-kill:
			timer.Stop()
			return
		}
	}
}

// refresh pushes the expiry forward from now. No-op once finished or when
// no timeout was declared.
func (l *lifecycle) refresh() {
	l.mu.Lock()
	if !l.finished && l.timeout > 0 {
		l.expiry = time.Now().Add(l.timeout)
	}
	l.mu.Unlock()
}

// Stop cancels the watcher and transitions to the stopped terminal state.
// Idempotent; loses the race against an in-flight timeout transition.
func (l *lifecycle) Stop() {
	l.fire(false)
}

func (l *lifecycle) fire(timedOut bool) {
	l.mu.Lock()
	if l.finished {
		l.mu.Unlock()
		return
	}
	l.finished = true
	l.timedOut = timedOut

	kill := l.kill
	detach := l.detach
	onTimeout := l.onTimeout
	l.kill = nil
	l.detach = nil
	l.onTimeout = nil
	l.mu.Unlock()

	if kill != nil {
		close(kill)
	}
	close(l.done)

	if timedOut && onTimeout != nil {
		onTimeout()
	}
	if detach != nil {
		detach()
	}
}

// IsFinished reports whether a terminal transition happened.
func (l *lifecycle) IsFinished() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.finished
}

// Wait blocks until the container reaches a terminal state. The boolean is
// true when it timed out and false when it was explicitly stopped.
func (l *lifecycle) Wait(ctx context.Context) (bool, error) {
	select {
	case <-l.done:
		l.mu.Lock()
		defer l.mu.Unlock()
		return l.timedOut, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// renderRows groups items by their resolved row into wire action rows,
// skipping empty rows.
func renderRows(children []Item, maxRows int) []map[string]any {
	rows := make([][]map[string]any, maxRows)
	for _, item := range children {
		row := item.renderedRow()
		if row < 0 {
			row = 0
		}
		rows[row] = append(rows[row], item.ToComponent())
	}

	out := make([]map[string]any, 0, maxRows)
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out = append(out, map[string]any{
			"type":       int(domain.ComponentActionRow),
			"components": row,
		})
	}
	return out
}
