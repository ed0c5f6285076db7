// Package progress adapts cryptotimed's terminal progress bar into a
// concrete consumer of engine.ProgressFunc: a Reporter that callers can pass
// straight to diodon.WithProgress to get a rendered bar over phase M and
// phase L instead of having to write their own throttling/rendering logic.
package progress

import (
	"fmt"
	"time"
)

// Bar renders a single phase's progress to stdout, mirroring cryptotimed's
// ProgressBar: a fixed-width ASCII bar plus elapsed/ETA timing.
type Bar struct {
	total     uint64
	current   uint64
	startTime time.Time
	lastPrint time.Time
	width     int
}

// NewBar creates a bar for a phase with the given total unit count.
func NewBar(total uint64) *Bar {
	return &Bar{
		total:     total,
		startTime: time.Now(),
		lastPrint: time.Now(),
		width:     50,
	}
}

// Update moves the bar to current, printing at most once per 100ms unless
// the phase has completed.
func (b *Bar) Update(current uint64) {
	b.current = current

	now := time.Now()
	if now.Sub(b.lastPrint) < 100*time.Millisecond && current < b.total {
		return
	}
	b.lastPrint = now

	b.print()
}

// Finish forces the bar to its completed state and advances the terminal
// past it.
func (b *Bar) Finish() {
	b.current = b.total
	b.print()
	fmt.Println()
}

func (b *Bar) print() {
	if b.total == 0 {
		return
	}
	percentage := float64(b.current) / float64(b.total) * 100
	filled := int(float64(b.width) * float64(b.current) / float64(b.total))

	elapsed := time.Since(b.startTime)
	var eta time.Duration
	if b.current > 0 {
		eta = time.Duration(float64(elapsed)*(float64(b.total)/float64(b.current)) - float64(elapsed))
	}

	bar := "["
	for i := 0; i < b.width; i++ {
		switch {
		case i < filled:
			bar += "="
		case i == filled && filled < b.width:
			bar += ">"
		default:
			bar += " "
		}
	}
	bar += "]"

	fmt.Printf("\r%s %.1f%% (%d/%d) Elapsed: %v ETA: %v",
		bar, percentage, b.current, b.total,
		elapsed.Round(time.Second), eta.Round(time.Second))
}

// Reporter tracks one Bar per Diodon phase ("phaseM", "phaseL") and swaps
// bars as the engine moves between them, so a single Reporter.Report can be
// handed directly to diodon.WithProgress for the whole call.
type Reporter struct {
	bars        map[string]*Bar
	activePhase string
}

// NewReporter returns a Reporter with no phases started yet; bars are
// created lazily on first report for each phase, since the engine doesn't
// announce a phase's total ahead of time.
func NewReporter() *Reporter {
	return &Reporter{bars: make(map[string]*Bar)}
}

// Report implements engine.ProgressFunc. It finishes the previous phase's
// bar (printing a trailing newline) the first time a new phase appears.
func (r *Reporter) Report(phase string, done, total uint64) {
	bar, ok := r.bars[phase]
	if !ok {
		if r.activePhase != "" && r.activePhase != phase {
			if prev := r.bars[r.activePhase]; prev != nil && prev.current < prev.total {
				prev.Finish()
			}
		}
		bar = NewBar(total)
		r.bars[phase] = bar
		r.activePhase = phase
	}
	bar.Update(done)
	if done == total {
		bar.Finish()
	}
}

// EstimateTime estimates the duration of a given number of operations at a
// measured rate, used to size a benchmark's expected phase-M runtime before
// committing to conservative-profile table construction.
func EstimateTime(operations uint64, opsPerSecond float64) time.Duration {
	if opsPerSecond <= 0 {
		return 0
	}
	seconds := float64(operations) / opsPerSecond
	return time.Duration(seconds * float64(time.Second))
}

// FormatDuration formats a duration the way cryptotimed's CLI reported
// benchmark results, rounding to the coarsest sensible unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}
