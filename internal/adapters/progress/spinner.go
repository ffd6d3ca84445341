package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/artspark/sparkdeploy/internal/usecase"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerSink reports progress with a spinner on interactive terminals and
// plain lines otherwise.
type SpinnerSink struct {
	out         io.Writer
	interactive bool

	mu           sync.Mutex
	spinner      *spinner.Spinner
	stageStarted time.Time
}

// NewSpinnerSink creates a spinner-based progress sink
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{out: out, interactive: interactive}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := event.Message
	if event.Total > 1 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, message)
	}

	if !s.interactive {
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if event.Spinner {
		if s.spinner == nil {
			s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.spinner.Writer = s.out
			s.spinner.HideCursor = false
			_ = s.spinner.Color("cyan", "bold")
		}
		s.spinner.Suffix = " " + message
		if !s.spinner.Active() {
			s.stageStarted = time.Now()
			s.spinner.Start()
		}
		return
	}

	s.stop()
	if event.Stage == usecase.StageCompleted {
		elapsed := ""
		if !s.stageStarted.IsZero() {
			elapsed = fmt.Sprintf(" (%s)", time.Since(s.stageStarted).Round(time.Millisecond))
		}
		color.New(color.FgGreen).Fprintf(s.out, "✓ %s%s\n", event.Message, elapsed)
		return
	}
	if message != "" {
		fmt.Fprintln(s.out, message)
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.print(color.New(color.FgRed), message)
}

// Stop clears the spinner line
func (s *SpinnerSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

func (s *SpinnerSink) print(c *color.Color, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop spinner temporarily
	wasActive := s.spinner != nil && s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	c.Fprintln(s.out, message)

	if wasActive {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stop() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
