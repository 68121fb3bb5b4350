package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/spriteforge/pkg/observability"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// Spinner provides a simple progress indicator with context cancellation support.
type Spinner struct {
	message string
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	mu      sync.Mutex
	once    sync.Once
	width   int // widest line drawn so far
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     os.Stderr,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				if n := len(s.message) + 4; n > s.width {
					s.width = n
				}
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop stops the spinner and clears the line. It must follow Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() { close(s.done) })
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.width
	if m := len(s.message) + 4; m > n {
		n = m
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", n))
}

// Cancelled returns true if the spinner was stopped due to context cancellation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// =============================================================================
// Batch Progress
// =============================================================================

// batchProgress drives a spinner from pipeline batch events.
type batchProgress struct {
	observability.NoopBatchHooks
	spinner *Spinner
	total   atomic.Int64
	done    atomic.Int64
	failed  atomic.Int64
}

func newBatchProgress(s *Spinner) *batchProgress {
	return &batchProgress{spinner: s}
}

func (p *batchProgress) OnBatchStart(_ context.Context, _ string, total int) {
	p.total.Store(int64(total))
	p.done.Store(0)
	p.failed.Store(0)
	p.spinner.SetMessage(p.message(""))
}

func (p *batchProgress) OnSpriteDone(_ context.Context, _, sprite, status string, _ time.Duration, _ error) {
	p.done.Add(1)
	if status == string(pipeline.StatusFailed) {
		p.failed.Add(1)
	}
	p.spinner.SetMessage(p.message(sprite))
}

func (p *batchProgress) message(last string) string {
	msg := fmt.Sprintf("Processing sprites %d/%d", p.done.Load(), p.total.Load())
	if n := p.failed.Load(); n > 0 {
		msg += fmt.Sprintf(", %d failed", n)
	}
	if last != "" {
		msg += " (" + last + ")"
	}
	return msg
}
