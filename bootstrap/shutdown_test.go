package bootstrap

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStopper struct {
	mu    sync.Mutex
	calls int
	err   error
	block chan struct{} // when non-nil, Stop blocks until closed
}

func (f *fakeStopper) Stop(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func (f *fakeStopper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// newTestCoordinator builds a coordinator with the process-level seams
// replaced: signals are injected directly and exit is recorded instead of
// terminating the test binary.
func newTestCoordinator(stopper Stopper, timeout time.Duration) (*ShutdownCoordinator, *atomic.Int32, *atomic.Int32) {
	sc := NewShutdownCoordinator(stopper, zap.NewNop().Sugar(), timeout)
	sc.notify = func(chan<- os.Signal) {}

	var exitCalls, lastCode atomic.Int32
	sc.exit = func(code int) {
		exitCalls.Add(1)
		lastCode.Store(int32(code))
	}
	return sc, &exitCalls, &lastCode
}

func waitDone(t *testing.T, sc *ShutdownCoordinator) {
	t.Helper()
	select {
	case <-sc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}

func TestShutdownCoordinator_SignalStopsServer(t *testing.T) {
	stopper := &fakeStopper{}
	sc, exitCalls, lastCode := newTestCoordinator(stopper, time.Second)

	ctx := sc.Arm(context.Background())
	require.NoError(t, ctx.Err())

	sc.signals <- syscall.SIGTERM
	waitDone(t, sc)

	assert.Equal(t, 1, stopper.callCount())
	assert.Equal(t, int32(1), exitCalls.Load())
	assert.Equal(t, int32(0), lastCode.Load())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestShutdownCoordinator_RepeatedSignalsCollapse(t *testing.T) {
	stopper := &fakeStopper{}
	sc, exitCalls, _ := newTestCoordinator(stopper, time.Second)
	sc.Arm(context.Background())

	sc.signals <- syscall.SIGINT
	waitDone(t, sc)

	sc.signals <- syscall.SIGTERM
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, stopper.callCount())
	assert.Equal(t, int32(1), exitCalls.Load())
}

func TestShutdownCoordinator_HangingStopStillExits(t *testing.T) {
	stopper := &fakeStopper{block: make(chan struct{})}
	t.Cleanup(func() { close(stopper.block) })

	sc, exitCalls, lastCode := newTestCoordinator(stopper, 50*time.Millisecond)
	sc.Arm(context.Background())

	start := time.Now()
	sc.signals <- syscall.SIGTERM
	waitDone(t, sc)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), exitCalls.Load())
	assert.Equal(t, int32(0), lastCode.Load())
}

type panickyStopper struct{}

func (panickyStopper) Stop(ctx context.Context) error {
	panic("storage already torn down")
}

func TestShutdownCoordinator_PanickingStopStillExitsZero(t *testing.T) {
	sc, exitCalls, lastCode := newTestCoordinator(panickyStopper{}, time.Second)
	sc.Arm(context.Background())

	sc.signals <- syscall.SIGTERM
	waitDone(t, sc)

	assert.Equal(t, int32(1), exitCalls.Load())
	assert.Equal(t, int32(0), lastCode.Load())
}

func TestShutdownCoordinator_StopErrorStillExitsZero(t *testing.T) {
	stopper := &fakeStopper{err: errors.New("listener already closed")}
	sc, exitCalls, lastCode := newTestCoordinator(stopper, time.Second)
	sc.Arm(context.Background())

	sc.signals <- syscall.SIGTERM
	waitDone(t, sc)

	assert.Equal(t, int32(1), exitCalls.Load())
	assert.Equal(t, int32(0), lastCode.Load())
}
