package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLoadLimitsConcurrency(t *testing.T) {
	c := NewController(Config{MaxConcurrentLoads: 1})
	ctx := context.Background()

	require.NoError(t, c.AcquireLoad(ctx))

	// A second acquire must block until the first slot is released.
	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := c.AcquireLoad(blocked)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseLoad()
	require.NoError(t, c.AcquireLoad(ctx))
	c.ReleaseLoad()
}

func TestNilControllerIsUnlimited(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	require.NoError(t, c.AcquireLoad(ctx))
	c.ReleaseLoad()
	require.NoError(t, c.AcquireIO(ctx, 1<<30))
	assert.Zero(t, c.BytesRead())
}

func TestAcquireIOAccountsBytes(t *testing.T) {
	c := NewController(Config{})
	ctx := context.Background()

	require.NoError(t, c.AcquireIO(ctx, 100))
	require.NoError(t, c.AcquireIO(ctx, 28))
	assert.EqualValues(t, 128, c.BytesRead())
}

func TestAcquireIOWithinBurst(t *testing.T) {
	// A request no larger than one second of budget passes immediately.
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20))
}

func TestAcquireIOOversizedHonorsCancellation(t *testing.T) {
	// A request larger than one second of budget is split into waits; a
	// canceled context interrupts it instead of erroring on burst size.
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, c.AcquireIO(ctx, 3<<20), context.Canceled)
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("hello world"), c)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	assert.EqualValues(t, 11, c.BytesRead())
}

func TestRateLimitedWriter(t *testing.T) {
	c := NewController(Config{})
	var buf bytes.Buffer
	w := NewRateLimitedWriter(context.Background(), &buf, c)

	n, err := w.Write([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "payload", buf.String())
	assert.EqualValues(t, 7, c.BytesRead())
}
