package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Computing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// not a terminal, so nothing is drawn
	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, &bytes.Buffer{}, "Computing...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Computing...")
	s.Start()
	s.Stop()
	s.Stop()
}
