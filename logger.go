package dict

import (
	"io"
	"log/slog"
	"time"
)

// noopLogger discards everything; the level is unreachable so records are
// never formatted.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.Level(1000),
}))

func (d *Dict[K, V]) logTableCreated(size uint64) {
	d.logger.Debug("dict table created", "size", size)
}

func (d *Dict[K, V]) logRehashStarted(from, to uint64) {
	d.logger.Debug("dict rehash started",
		"from", from,
		"to", to,
		"used", d.ht[0].used,
	)
}

func (d *Dict[K, V]) logRehashCompleted() {
	d.logger.Debug("dict rehash completed",
		"size", d.ht[0].size,
		"used", d.ht[0].used,
	)
}

func (d *Dict[K, V]) logForcedGrowth(used, size uint64) {
	d.logger.Warn("dict growing with resizing disabled",
		"used", used,
		"size", size,
		"ratio", used/size,
	)
}

func (d *Dict[K, V]) logTimedRehash(buckets int, elapsed time.Duration) {
	d.logger.Debug("dict timed rehash",
		"buckets", buckets,
		"elapsed", elapsed,
		"rehashing", d.IsRehashing(),
	)
}

func (d *Dict[K, V]) logFingerprintMismatch(want, got uint64) {
	d.logger.Error("dict unsafe iterator fingerprint mismatch",
		"want", want,
		"got", got,
		"len", d.Len(),
	)
}
