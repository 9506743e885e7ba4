// Package resource bounds the concurrency and IO throughput of dataset
// loading. Training arrays are large; loading several splits at once without
// a limit can saturate disks or object-store links shared with the training
// job itself.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentLoads is the maximum number of array loads in flight.
	// If 0, defaults to 1.
	MaxConcurrentLoads int64

	// IOLimitBytesPerSec is the maximum IO throughput for loads.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages load concurrency and IO throughput.
type Controller struct {
	cfg Config

	loadSem   *semaphore.Weighted
	ioLimiter *rate.Limiter
	bytesRead atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = 1
	}

	c := &Controller{
		cfg:     cfg,
		loadSem: semaphore.NewWeighted(cfg.MaxConcurrentLoads),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireLoad reserves a load slot, blocking until one is available or ctx
// is canceled. A nil controller imposes no limits.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.loadSem.Acquire(ctx, 1)
}

// ReleaseLoad releases a load slot.
func (c *Controller) ReleaseLoad() {
	if c == nil {
		return
	}
	c.loadSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil {
		return nil
	}
	c.bytesRead.Add(int64(bytes))
	if c.ioLimiter == nil {
		return nil
	}
	// The limiter's burst is one second of budget; larger requests are
	// split so they throttle instead of erroring.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// BytesRead returns the total number of bytes accounted so far.
func (c *Controller) BytesRead() int64 {
	if c == nil {
		return 0
	}
	return c.bytesRead.Load()
}
