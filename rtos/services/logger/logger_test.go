package logger

import (
	"strings"
	"sync"
	"testing"
	"time"

	logclient "whirl/rtos/client/logger"
	"whirl/rtos/kernel"
)

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) WriteLineString(s string) { r.WriteLineBytes([]byte(s)) }

func (r *lineRecorder) WriteLineBytes(b []byte) {
	r.mu.Lock()
	r.lines = append(r.lines, string(b))
	r.mu.Unlock()
}

func (r *lineRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func waitLines(t *testing.T, r *lineRecorder, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		got := r.snapshot()
		if len(got) >= n {
			return got
		}
		if time.Now().After(deadline) {
			t.Fatalf("got %d lines, want %d: %q", len(got), n, got)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestServiceWritesLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	rec := &lineRecorder{}
	if _, err := k.AddTask(New(rec, ep.Restrict(kernel.RightRecv))); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	ctx := kernel.NewContext(k, 0)
	to := ep.Restrict(kernel.RightSend)
	if res := logclient.Log(ctx, to, "app: boot\n"); res != kernel.SendOK {
		t.Fatalf("Log: %s", res)
	}
	// Non-log traffic is ignored.
	ctx.SendTo(to, 42, []byte("noise"))
	if res := logclient.Logf(ctx, to, "melody: step %d at %d Hz", 1, 262); res != kernel.SendOK {
		t.Fatalf("Logf: %s", res)
	}

	got := waitLines(t, rec, 2)
	want := []string{"app: boot", "melody: step 1 at 262 Hz"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLogTruncatesLongLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctx := kernel.NewContext(k, 0)

	if res := logclient.Log(ctx, ep, strings.Repeat("x", kernel.MaxMessageBytes+20)); res != kernel.SendOK {
		t.Fatalf("Log: %s", res)
	}
	msg, ok := ctx.TryRecv(ep)
	if !ok {
		t.Fatal("expected a queued line")
	}
	if n := len(msg.Payload()); n != kernel.MaxMessageBytes {
		t.Fatalf("payload is %d bytes, want %d", n, kernel.MaxMessageBytes)
	}
}

func TestLogDropsWhenQueueFull(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctx := kernel.NewContext(k, 0)

	var res kernel.SendResult
	for i := 0; i < 64 && res == kernel.SendOK; i++ {
		res = logclient.Log(ctx, ep, "spam")
	}
	if res != kernel.SendErrQueueFull {
		t.Fatalf("got %s, want queue full", res)
	}
	if res := logclient.LogRetry(ctx, ep, "spam", 0); res != kernel.SendErrQueueFull {
		t.Fatalf("LogRetry with no budget: got %s", res)
	}
	if res := logclient.Log(nil, ep, "x"); res != kernel.SendErrInvalidToCap {
		t.Fatalf("Log(nil ctx): got %s", res)
	}
}
