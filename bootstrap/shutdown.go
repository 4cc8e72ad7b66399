package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Stopper is the graceful-stop surface of the serving component.
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownCoordinator owns the signal-driven shutdown sequence: on the first
// SIGINT or SIGTERM it cancels the shared context, drives a time-bounded
// graceful stop of the server, and terminates the process with exit status 0.
// Repeated or concurrent signals collapse into a single shutdown; a stop that
// hangs or fails never keeps the process alive past the timeout.
type ShutdownCoordinator struct {
	stopper Stopper
	logger  *zap.SugaredLogger
	timeout time.Duration

	once    sync.Once
	cancel  context.CancelFunc
	signals chan os.Signal
	notify  func(chan<- os.Signal)
	exit    func(int)
	done    chan struct{}
}

// NewShutdownCoordinator creates a coordinator for the given server. The
// timeout bounds the graceful stop window and is owned by server
// construction, not by the coordinator.
func NewShutdownCoordinator(stopper Stopper, logger *zap.SugaredLogger, timeout time.Duration) *ShutdownCoordinator {
	return &ShutdownCoordinator{
		stopper: stopper,
		logger:  logger,
		timeout: timeout,
		signals: make(chan os.Signal, 1),
		notify: func(c chan<- os.Signal) {
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		},
		exit: os.Exit,
		done: make(chan struct{}),
	}
}

// Arm installs the signal handler and returns a derived context that is
// cancelled when shutdown begins. Long-running loops observe that context
// cooperatively instead of registering their own handlers.
func (sc *ShutdownCoordinator) Arm(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	sc.cancel = cancel
	sc.notify(sc.signals)
	go sc.watch()
	return ctx
}

// Done is closed once the shutdown sequence has run to completion. In
// production the process exits first; the channel exists for callers that
// replaced the exit func.
func (sc *ShutdownCoordinator) Done() <-chan struct{} {
	return sc.done
}

// watch collapses every received signal into at most one shutdown.
func (sc *ShutdownCoordinator) watch() {
	for range sc.signals {
		sc.once.Do(sc.run)
	}
}

// run drives the shutdown sequence. Exit is unconditional: a panic while
// logging or stopping must not keep the process alive.
func (sc *ShutdownCoordinator) run() {
	defer close(sc.done)
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic during shutdown: %v\n", r)
		}
		sc.exit(0)
	}()

	sc.logger.Info("Shutdown signal received, stopping server...")
	sc.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), sc.timeout)
	defer cancel()

	stopped := make(chan error, 1)
	go func() {
		// A panic out of Stop must surface as an error here, not kill
		// the process with a non-zero status.
		defer func() {
			if r := recover(); r != nil {
				stopped <- fmt.Errorf("panic in stop: %v", r)
			}
		}()
		stopped <- sc.stopper.Stop(ctx)
	}()

	select {
	case err := <-stopped:
		if err != nil {
			sc.logger.Errorw("Graceful stop failed", "error", err)
		} else {
			sc.logger.Info("Server stopped cleanly")
		}
	case <-ctx.Done():
		sc.logger.Warnw("Graceful stop timed out", "timeout", sc.timeout)
	}
}
