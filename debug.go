package easel

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame event counts and timing.
// Only populated when debug output is enabled.
type debugStats struct {
	events      int
	transitions int
	batches     int
	eventTime   time.Duration
}

// diagnostics writes warnings and, in debug mode, per-event traces. Output
// goes to stderr unless redirected.
type diagnostics struct {
	out   io.Writer
	debug bool
	stats debugStats
}

func newDiagnostics() *diagnostics {
	return &diagnostics{out: os.Stderr}
}

// SetDebugMode enables per-event tracing and frame stats on the diagnostics
// writer.
func (m *Machine) SetDebugMode(on bool) {
	m.diagnostics.debug = on
}

// SetDiagnosticsOutput redirects warnings and debug traces. A nil writer
// silences them.
func (m *Machine) SetDiagnosticsOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	m.diagnostics.out = w
}

// warnf reports a recoverable problem, such as an update for an unknown
// widget.
func (d *diagnostics) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.out, "[easel] warning: "+format+"\n", args...)
}

// event traces one processed event.
func (d *diagnostics) event(typ EventType, from, to Mode, took time.Duration) {
	d.stats.events++
	d.stats.eventTime += took
	if from != to {
		d.stats.transitions++
		_, _ = fmt.Fprintf(d.out, "[easel] %s: %s -> %s (%v)\n", typ, from, to, took)
	}
}

// debugLog prints and resets the stats gathered since the last call. Called
// once per frame by Game when debug is on.
func (d *diagnostics) debugLog() {
	if !d.debug {
		return
	}
	s := d.stats
	if s.events > 0 || s.batches > 0 {
		_, _ = fmt.Fprintf(d.out,
			"[easel] events: %d | transitions: %d | batches: %d | event time: %v\n",
			s.events, s.transitions, s.batches, s.eventTime)
	}
	d.stats = debugStats{}
}
