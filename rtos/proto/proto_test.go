package proto

import "testing"

func TestLogLinePayloadTrimsAndTruncates(t *testing.T) {
	if got := string(LogLinePayload([]byte("melody: on\r\n"), 64)); got != "melody: on" {
		t.Fatalf("got %q, want %q", got, "melody: on")
	}
	if got := string(LogLinePayload([]byte("abcdef"), 4)); got != "abcd" {
		t.Fatalf("got %q, want %q", got, "abcd")
	}

	src := []byte("x")
	out := LogLinePayload(src, 8)
	src[0] = 'y'
	if string(out) != "x" {
		t.Fatal("expected payload to be copied")
	}
	if MsgLogLine.String() != "log_line" || Kind(99).String() != "unknown" {
		t.Fatal("unexpected kind names")
	}
}
