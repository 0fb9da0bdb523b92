package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerInterval = 80 * time.Millisecond

	// Calls that finish sooner never show a running clock.
	spinnerClockAfter = 2 * time.Second
)

// Spinner draws a one-line activity indicator while an API call is in
// flight. The line is erased when the call's context ends or Stop is called.
type Spinner struct {
	w          io.Writer
	label      string
	parent     context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	clockAfter time.Duration

	mu      sync.Mutex
	started bool
	exited  chan struct{}
	once    sync.Once
}

// newSpinnerWithContext returns a spinner drawing on stderr, so that piped
// stdout stays clean.
func newSpinnerWithContext(ctx context.Context, label string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, label)
}

func newSpinnerTo(ctx context.Context, w io.Writer, label string) *Spinner {
	if ctx == nil {
		ctx = context.Background()
	}
	inner, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:          w,
		label:      label,
		parent:     ctx,
		ctx:        inner,
		cancel:     cancel,
		clockAfter: spinnerClockAfter,
		exited:     make(chan struct{}),
	}
}

// Start begins drawing. Calling it more than once has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.run(time.Now())
}

func (s *Spinner) run(began time.Time) {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	width := 0
	for i := 0; ; i++ {
		line := s.line(spinnerFrames[i%len(spinnerFrames)], time.Since(began))
		if w := lipgloss.Width(line); w > width {
			width = w
		}
		fmt.Fprintf(s.w, "\r%s", line)

		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) line(frame string, elapsed time.Duration) string {
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.label)
	if elapsed >= s.clockAfter {
		line += StyleDim.Render(fmt.Sprintf(" (%s)", elapsed.Truncate(time.Second)))
	}
	return line
}

// Stop erases the indicator and waits for drawing to finish. It is safe to
// call more than once, and before Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.started = true // a later Start must not draw
		s.mu.Unlock()
		if started {
			<-s.exited
		}
	})
}

// StopWithError stops the spinner and reports message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the call's context ended, as opposed to the
// spinner being stopped by its caller.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
