package touchkit

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger creates the default kit logger: stderr, warn level, prefixed
// with the package name and tagged with the kit id.
func newLogger(id uuid.UUID) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "touchkit",
		Level:  log.WarnLevel,
	})
	return l.With("kit", id.String()[:8])
}

// SetLogger replaces the kit's logger. A nil logger restores the default.
func (k *Kit) SetLogger(l *log.Logger) {
	if l == nil {
		l = newLogger(k.id)
		if k.debug {
			l.SetLevel(log.DebugLevel)
		}
	}
	k.logger = l
}

// Logger returns the kit's logger.
func (k *Kit) Logger() *log.Logger {
	return k.logger
}

// SetDebugMode enables or disables debug logging of focus changes, loads,
// resets, exports, and ignored gestures.
func (k *Kit) SetDebugMode(enabled bool) {
	k.debug = enabled
	if enabled {
		k.logger.SetLevel(log.DebugLevel)
	} else {
		k.logger.SetLevel(log.WarnLevel)
	}
}

// Stats summarizes kit state for diagnostics.
type Stats struct {
	Children      int
	HasBackground bool
	Operator      ElementID
	Frozen        bool
	PendingLoads  int
	QueuedPoses   int
	Tweens        int
	Generation    uint64
}

// Stats returns a snapshot of the kit's state.
func (k *Kit) Stats() Stats {
	op, _ := k.focus.Operator()
	_, hasBg := k.reg.Background()
	return Stats{
		Children:      k.reg.Len(),
		HasBackground: hasBg,
		Operator:      op,
		Frozen:        k.focus.Frozen(),
		PendingLoads:  k.inflight,
		QueuedPoses:   k.frames.len(),
		Tweens:        len(k.tweens),
		Generation:    k.reg.Generation(),
	}
}

// LogStats writes Stats at debug level.
func (k *Kit) LogStats() {
	s := k.Stats()
	k.logger.Debug("stats",
		"children", s.Children,
		"background", s.HasBackground,
		"operator", s.Operator,
		"frozen", s.Frozen,
		"pending", s.PendingLoads,
		"queued", s.QueuedPoses,
		"tweens", s.Tweens,
		"generation", s.Generation)
}
