package application

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultAutoRefreshInterval = 5 * time.Minute

// AutoRefresher runs Coordinator.RunAutoRefreshCycle once on Start and then on
// every tick until Stop. It holds at most one running loop.
type AutoRefresher struct {
	coordinator *Coordinator
	interval    time.Duration
	logger      logrus.FieldLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	// stopping is the done channel of a loop Stop is still waiting on.
	stopping chan struct{}
}

func NewAutoRefresher(coordinator *Coordinator, interval time.Duration, logger logrus.FieldLogger) *AutoRefresher {
	if interval <= 0 {
		interval = DefaultAutoRefreshInterval
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &AutoRefresher{
		coordinator: coordinator,
		interval:    interval,
		logger:      logger.WithField("component", "auto-refresh"),
	}
}

func (a *AutoRefresher) Interval() time.Duration {
	return a.interval
}

// Start arms the loop and returns true, or returns false if it was already
// running. The first cycle runs immediately on the loop goroutine, after any
// loop still being stopped has exited.
func (a *AutoRefresher) Start(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.runningLocked() {
		return false
	}
	if a.cancel != nil {
		a.cancel()
	}

	previous := a.stopping
	if previous == nil && a.done != nil {
		// The last loop ended on its parent context and was never stopped.
		previous = a.done
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	a.logger.WithField("interval", a.interval).Debug("auto refresh armed")
	go a.loop(loopCtx, previous, done)
	return true
}

// Stop cancels the loop and waits for an in-flight cycle to return, so no
// cycle of that loop mutates coordinator state afterwards. IsAutoRefreshing is
// cleared unless Start armed a new loop in the meantime. Calling Stop when idle
// only clears the flag.
func (a *AutoRefresher) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	if done != nil {
		a.stopping = done
	}
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		a.logger.Debug("auto refresh stopped")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if done != nil && a.stopping == done {
		a.stopping = nil
	}
	if a.done == nil {
		a.coordinator.setAutoRefreshing(false)
	}
}

func (a *AutoRefresher) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runningLocked()
}

func (a *AutoRefresher) runningLocked() bool {
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		// The parent context ended the loop without a Stop.
		return false
	default:
		return true
	}
}

func (a *AutoRefresher) loop(ctx context.Context, previous <-chan struct{}, done chan struct{}) {
	defer close(done)

	if previous != nil {
		select {
		case <-previous:
		case <-ctx.Done():
			return
		}
	}

	a.coordinator.RunAutoRefreshCycle(ctx)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.coordinator.RunAutoRefreshCycle(ctx)
		}
	}
}
