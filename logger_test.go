package dict

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger_RehashEvents(t *testing.T) {
	var buf bytes.Buffer
	d := New(Int64Type[int](), WithLogger(newBufferLogger(&buf)))

	for i := int64(0); i < 100; i++ {
		require.NoError(t, d.Add(i, 0))
	}
	finishRehash(d)

	out := buf.String()
	require.Contains(t, out, "dict table created")
	require.Contains(t, out, "dict rehash started")
	require.Contains(t, out, "dict rehash completed")

	buf.Reset()
	require.NoError(t, d.Expand(1024))
	require.Positive(t, d.RehashMilliseconds(10))
	require.Contains(t, buf.String(), "dict timed rehash")
}

func TestLogger_ForcedGrowth(t *testing.T) {
	var buf bytes.Buffer
	rt := NewRuntime(0)
	rt.DisableResize()
	d := New(Int64Type[int](), WithLogger(newBufferLogger(&buf)), WithRuntime(rt))
	for i := int64(0); i < 25; i++ {
		require.NoError(t, d.Add(i, 0))
	}
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "dict growing with resizing disabled")
}

func TestLogger_FingerprintMismatch(t *testing.T) {
	var buf bytes.Buffer
	d := New(StringType[int](), WithLogger(newBufferLogger(&buf)))
	require.NoError(t, d.Add("a", 1))
	require.NoError(t, d.Add("b", 2))

	it := d.Iterator()
	require.NotNil(t, it.Next())
	require.NoError(t, d.Add("c", 3))
	require.Panics(t, it.Release)
	require.Contains(t, buf.String(), "level=ERROR")
	require.Contains(t, buf.String(), "fingerprint mismatch")
}

func TestLogger_PresizeFailure(t *testing.T) {
	var buf bytes.Buffer
	d := New(StringType[int](), WithLogger(newBufferLogger(&buf)), WithMaxSlots(16), WithPresize(1000))
	require.Equal(t, 0, d.Slots())
	require.Contains(t, buf.String(), "dict presize ignored")

	require.NoError(t, d.Add("a", 1))
	require.Equal(t, 4, d.Slots())
}

func TestNoopLogger(t *testing.T) {
	d := New(StringType[int]())
	require.Same(t, noopLogger, d.logger)
	require.False(t, noopLogger.Enabled(context.Background(), slog.LevelError))
}
