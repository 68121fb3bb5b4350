package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func quietSpinner(ctx context.Context, msg string) *Spinner {
	s := newSpinnerWithContext(ctx, msg)
	s.out = io.Discard
	return s
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Processing 3 sprites...")
	s.out = &out
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Processing sprites 1/3")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Processing 3 sprites...") || !strings.Contains(got, "Processing sprites 1/3") {
		t.Errorf("spinner output = %q", got)
	}
	if !s.Cancelled() {
		t.Error("Stop should cancel the spinner context")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := quietSpinner(ctx, "Rendering...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := quietSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestBatchProgress(t *testing.T) {
	s := quietSpinner(context.Background(), "")
	p := newBatchProgress(s)
	ctx := context.Background()

	p.OnBatchStart(ctx, "run", 3)
	if s.message != "Processing sprites 0/3" {
		t.Errorf("start message = %q", s.message)
	}

	p.OnSpriteDone(ctx, "run", "mavi_sapka", "ok", time.Millisecond, nil)
	p.OnSpriteDone(ctx, "run", "ai_hat", "failed", time.Millisecond, errors.New("render: missing"))
	if want := "Processing sprites 2/3, 1 failed (ai_hat)"; s.message != want {
		t.Errorf("message = %q, want %q", s.message, want)
	}
}

func TestBatchProgressConcurrent(t *testing.T) {
	s := quietSpinner(context.Background(), "")
	p := newBatchProgress(s)
	ctx := context.Background()
	p.OnBatchStart(ctx, "run", 50)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.OnSpriteDone(ctx, "run", "sprite", "ok", 0, nil)
		}()
	}
	wg.Wait()

	if got := p.done.Load(); got != 50 {
		t.Errorf("done = %d, want 50", got)
	}
}
